package types

// Filter — разобранные параметры списочного запроса:
// ?search=...&sort[field]=asc&filter[field]=value&page=1&limit=20
type Filter struct {
	Search         string
	Sort           map[string]string
	Filter         map[string]interface{}
	Limit          int
	Offset         int
	Page           int
	WithPagination bool
}
