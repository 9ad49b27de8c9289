package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"parts-order-system/pkg/constants"
	"parts-order-system/pkg/utils"
)

type seedUser struct {
	Login          string
	Password       string
	Fio            string
	Phone          string
	DepartmentName string
	Position       string
	RoleCode       string
	IsReviewer     bool
}

var usersData = []seedUser{
	{
		Login:          "admin",
		Password:       "admin123",
		Fio:            "Администратор системы",
		DepartmentName: "Отдел ИТ",
		Position:       "Системный администратор",
		RoleCode:       constants.RoleAdmin,
	},
	{
		Login:          "engineer1",
		Password:       "engineer123",
		Fio:            "Батболд Д.",
		Phone:          "97688001122",
		DepartmentName: "Механический цех",
		Position:       "Инженер-механик",
		RoleCode:       constants.RoleEngineer,
	},
	{
		Login:          "reviewer1",
		Password:       "reviewer123",
		Fio:            "Эрдэнэ С.",
		Phone:          "97688003344",
		DepartmentName: "Технический отдел",
		Position:       "Главный инженер",
		RoleCode:       constants.RoleReviewer,
		IsReviewer:     true,
	},
	{
		Login:          "reviewer2",
		Password:       "reviewer123",
		Fio:            "Тэмуулэн Б.",
		Phone:          "97688005566",
		DepartmentName: "Отдел снабжения",
		Position:       "Руководитель отдела снабжения",
		RoleCode:       constants.RoleReviewer,
		IsReviewer:     true,
	},
	{
		Login:          "reviewer3",
		Password:       "reviewer123",
		Fio:            "Сайнбаяр Г.",
		Phone:          "97688007788",
		DepartmentName: "Планово-экономический отдел",
		Position:       "Экономист",
		RoleCode:       constants.RoleReviewer,
		IsReviewer:     true,
	},
}

// SeedUsers создает стартовый набор пользователей: администратора,
// инженера и проверяющих. Существующие логины пропускаются.
func SeedUsers(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения пользователей...")

	for _, u := range usersData {
		if err := seedUserIfMissing(ctx, db, u); err != nil {
			log.Fatalf("❌ Ошибка создания пользователя %s: %v", u.Login, err)
		}
	}

	log.Println("✅ Наполнение пользователей завершено!")
}

func seedUserIfMissing(ctx context.Context, db *pgxpool.Pool, u seedUser) error {
	var existingID uint64
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE login = $1", u.Login).Scan(&existingID)
	if err == nil {
		log.Printf("  - Пользователь '%s' уже существует. Пропускаем.", u.Login)
		return nil
	}

	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return fmt.Errorf("не удалось захешировать пароль: %w", err)
	}

	query := `
		INSERT INTO users (login, password_hash, fio, phone, department_name, position, role_code, is_reviewer)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = db.Exec(ctx, query,
		u.Login, hashed, u.Fio, nullIfEmpty(u.Phone), nullIfEmpty(u.DepartmentName),
		nullIfEmpty(u.Position), u.RoleCode, u.IsReviewer,
	)
	if err != nil {
		return fmt.Errorf("ошибка вставки пользователя: %w", err)
	}
	log.Printf("  - Создан пользователь '%s' (%s)", u.Login, u.RoleCode)
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
