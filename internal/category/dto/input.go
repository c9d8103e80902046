package dto

type CreateCategoryInput struct {
	Name     string
	CallerID *string
}

type UpdateCategoryInput struct {
	ID       string
	Name     string
	CallerID *string
}
