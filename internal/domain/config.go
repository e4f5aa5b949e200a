package domain

import "time"

// SiteConfig is a singleton row: everything the storefront shows that is not
// catalog content. SliderSpeedMS drives the hero carousel autoplay interval.
type SiteConfig struct {
	ID            int    `gorm:"primaryKey"`
	SiteName      string `gorm:"size:120"`
	LogoURL       string `gorm:"type:text"`
	PhoneNumber   string `gorm:"size:30"`
	InstagramURL  string `gorm:"size:255"`
	SliderSpeedMS int    `gorm:"type:int;default:4000"`
	ShowSoldOut   bool   `gorm:"default:true"`
	UpdatedAt     time.Time
}

// SiteConfigPatch carries a partial update; nil fields are left untouched.
type SiteConfigPatch struct {
	SiteName      *string
	LogoURL       *string
	PhoneNumber   *string
	InstagramURL  *string
	SliderSpeedMS *int
	ShowSoldOut   *bool
}

// Apply copies the set fields onto cfg.
func (p SiteConfigPatch) Apply(cfg *SiteConfig) {
	if p.SiteName != nil {
		cfg.SiteName = *p.SiteName
	}
	if p.LogoURL != nil {
		cfg.LogoURL = *p.LogoURL
	}
	if p.PhoneNumber != nil {
		cfg.PhoneNumber = *p.PhoneNumber
	}
	if p.InstagramURL != nil {
		cfg.InstagramURL = *p.InstagramURL
	}
	if p.SliderSpeedMS != nil {
		cfg.SliderSpeedMS = *p.SliderSpeedMS
	}
	if p.ShowSoldOut != nil {
		cfg.ShowSoldOut = *p.ShowSoldOut
	}
}
