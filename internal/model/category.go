package model

type Category struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Audit
}
