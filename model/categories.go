package model

type Category struct {
	ID        int    `json:"id" validate:"numeric,gte=0"`
	Name      string `json:"name" validate:"required,min=1,max=50"`
	CreatorID int    `json:"creatorID" validate:"numeric,gte=0"`
}
