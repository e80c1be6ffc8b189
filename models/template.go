package models

// TemplateCategory defines the design families a template belongs to.
type TemplateCategory string

const (
	CategoryRomantic     TemplateCategory = "romantic"
	CategoryContemporary TemplateCategory = "contemporary"
	CategoryFormal       TemplateCategory = "formal"
	CategoryTraditional  TemplateCategory = "traditional"
)

// Valid reports whether the category is one of the known values.
func (c TemplateCategory) Valid() bool {
	switch c {
	case CategoryRomantic, CategoryContemporary, CategoryFormal, CategoryTraditional:
		return true
	}
	return false
}

// Template is an invitation design. TemplateData is an opaque JSON blob
// consumed by the client renderer; the service only checks it parses.
type Template struct {
	BaseModel
	Name         string           `gorm:"type:varchar(255);not null" json:"name"`
	Category     TemplateCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	ThumbnailURL string           `gorm:"type:varchar(500)" json:"thumbnail_url"`
	PreviewURL   string           `gorm:"type:varchar(500)" json:"preview_url"`
	TemplateData string           `gorm:"type:jsonb;not null" json:"template_data"`
	IsActive     bool             `gorm:"not null;default:true;index" json:"is_active"`
}
