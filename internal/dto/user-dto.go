package dto

type ShortUserDTO struct {
	ID             uint64 `json:"id"`
	Fio            string `json:"fio"`
	Phone          string `json:"phone,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
}

// ReviewerDTO — элемент справочника проверяющих для формы отправки.
type ReviewerDTO struct {
	ID             uint64 `json:"id"`
	Fio            string `json:"fio"`
	Phone          string `json:"phone,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
	Position       string `json:"position,omitempty"`
}

type LoginDTO struct {
	Login    string `json:"login" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
