package main

import (
	"context"
	"flag"
	"log"

	"parts-order-system/pkg/config"
	"parts-order-system/pkg/database/postgresql"
	"parts-order-system/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runUsers := flag.Bool("users", false, "Создать стартовых пользователей (админ, инженер, проверяющие)")
	runAll := flag.Bool("all", false, "Запустить все сидеры")

	flag.Parse()

	if !*runUsers && !*runAll {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Пример использования:")
		log.Println("  go run ./seeders/cmd/seed -users")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)

	if err := postgresql.RunMigrations(cfg.Postgres.DSN); err != nil {
		log.Fatalf("❌ Не удалось применить миграции: %v", err)
	}

	dbPool, err := postgresql.ConnectDB(context.Background(), cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("❌ Не удалось подключиться к БД: %v", err)
	}
	defer dbPool.Close()

	if *runAll || *runUsers {
		seeders.SeedUsers(dbPool)
	}

	log.Println("✅ Все указанные операции сидирования успешно завершены.")
	log.Println("======================================================")
}
