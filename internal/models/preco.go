package models

import "time"

type Preco struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Marca     string    `json:"marca" gorm:"not null"`
	Codigo    string    `json:"codigo" gorm:"not null"`
	Preco     float64   `json:"preco" gorm:"not null;default:0"`
	Descricao string    `json:"descricao" gorm:"not null"`
	Timestamp time.Time `json:"timestamp"`
}

func (Preco) TableName() string {
	return "precos"
}
