package models

type SiteInfo struct {
	Meta         `bson:",inline"`
	Name         string            `json:"name" bson:"name"`
	Location     string            `json:"location" bson:"location"`
	Distance     string            `json:"distance" bson:"distance"`
	Phone        string            `json:"phone" bson:"phone"`
	Email        string            `json:"email" bson:"email"`
	Address      string            `json:"address" bson:"address"`
	Description  string            `json:"description" bson:"description"`
	WorkingHours string            `json:"working_hours" bson:"working_hours"`
	SocialMedia  map[string]string `json:"social_media" bson:"social_media"`
	SEOKeywords  []string          `json:"seo_keywords" bson:"seo_keywords"`
}

// DefaultSiteInfo is what gets persisted the first time the site info is read
// from an empty collection.
func DefaultSiteInfo() SiteInfo {
	return SiteInfo{
		Name:         "Ферма ЛуЛу",
		Location:     "в Космакова",
		Distance:     "всего 30 км от Екатеринбурга",
		Phone:        "+7 (343) 379-42-98",
		Email:        "info@alpaca-lulu.ru",
		Address:      "ул. Свободы, 28, д. Космакова",
		Description:  "Полезное семейное развлечение на свежем воздухе и в любую погоду",
		WorkingHours: "Ежедневно с 10:00 до 18:00",
		SocialMedia:  map[string]string{},
		SEOKeywords:  []string{},
	}
}

type SiteInfoView struct {
	Name         string            `json:"name"`
	Location     string            `json:"location"`
	Distance     string            `json:"distance"`
	Phone        string            `json:"phone"`
	Email        string            `json:"email"`
	Address      string            `json:"address"`
	Description  string            `json:"description"`
	WorkingHours string            `json:"working_hours"`
	SocialMedia  map[string]string `json:"social_media"`
}

func (s SiteInfo) View() SiteInfoView {
	social := s.SocialMedia
	if social == nil {
		social = map[string]string{}
	}
	return SiteInfoView{
		Name:         s.Name,
		Location:     s.Location,
		Distance:     s.Distance,
		Phone:        s.Phone,
		Email:        s.Email,
		Address:      s.Address,
		Description:  s.Description,
		WorkingHours: s.WorkingHours,
		SocialMedia:  social,
	}
}
