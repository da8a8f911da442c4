package models

// User is the read-only view of the back office "usuario" table, used to
// label actors in reports.
type User struct {
	ID     int64  `gorm:"column:usuario_id;primaryKey" json:"usuario_id"`
	Code   string `gorm:"column:usuario_codigo" json:"usuario_codigo"`
	Alias  string `gorm:"column:usuario_alias" json:"usuario_alias"`
	Active bool   `gorm:"column:usuario_situacion;default:true" json:"usuario_situacion"`
}

// TableName maps User to the business application's table.
func (User) TableName() string { return "usuario" }
