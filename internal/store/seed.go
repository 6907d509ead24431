package store

import (
	"context"
	"fmt"
	"time"

	"github.com/shec-toronto/community-health-api/internal/model"
)

// SeedDemoData loads the demo content set into the store: two workshops, two
// resources, two partners, and the four-person team. Workshop dates are
// placed a couple of weeks out so the upcoming listing is never empty.
func SeedDemoData(ctx context.Context, s Storage) error {
	now := time.Now()
	nextWeek := func(days int, hour int) time.Time {
		d := now.AddDate(0, 0, days)
		return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.Local)
	}

	workshops := []model.CreateWorkshopRequest{
		{
			Title: model.LocalizedText{
				En: "Diabetes Management for Families",
				So: "Maaraynta Sonkorowga Qoysaska",
			},
			Description: model.LocalizedText{
				En: "Learn practical strategies for managing diabetes while maintaining traditional dietary practices",
				So: "Baro xeeladaha wax ku ool ah ee maaraynta sonkorowga halka aad ku dhawrayso dhaqanka cuntada dhaqameedka",
			},
			Category:     model.CategoryChronicDisease,
			Date:         nextWeek(14, 19),
			EndDate:      nextWeek(14, 21),
			Location:     "Abu Hurairah Centre",
			MaxAttendees: 30,
			Facilitator:  "Dr. Amina Hassan",
		},
		{
			Title: model.LocalizedText{
				En: "Women's Health Discussion Circle",
				So: "Goobta Wadahadalka Caafimaadka Haweenka",
			},
			Description: model.LocalizedText{
				En: "Safe space for women to discuss health concerns with cultural sensitivity",
				So: "Meel ammaan ah oo haweenku ku wadahadlaan arrimaha caafimaadka iyagoo tixgaliyay dhaqanka",
			},
			Category:     model.CategoryMentalHealth,
			Date:         nextWeek(16, 18),
			EndDate:      nextWeek(16, 20),
			Location:     "Khalid bin Waleed Centre",
			MaxAttendees: 25,
			Facilitator:  "Fadumo Ali, RN",
		},
	}
	for _, w := range workshops {
		if _, err := s.CreateWorkshop(ctx, w); err != nil {
			return fmt.Errorf("seed workshop: %w", err)
		}
	}

	resources := []model.CreateResourceRequest{
		{
			Title: model.LocalizedText{
				En: "Diabetes Management Guide",
				So: "Hagaha Maaraynta Sonkorowga",
			},
			Description: model.LocalizedText{
				En: "Comprehensive guide for managing diabetes in Somali families",
				So: "Hage shaafici ah oo loogu talagalay maaraynta sonkorowga qoysaska Soomaalida",
			},
			Category:     "health-guides",
			Type:         "pdf",
			DownloadURL:  "/resources/diabetes-guide.pdf",
			ThumbnailURL: "/images/diabetes-guide-thumb.jpg",
		},
		{
			Title: model.LocalizedText{
				En: "Healthy Somali Recipes",
				So: "Cuntooyinka Caafimaadka leh ee Soomaalida",
			},
			Description: model.LocalizedText{
				En: "Traditional recipes adapted for better health outcomes",
				So: "Cuntooyinka dhaqameedka oo loo habeeyay natiijooyin caafimaad oo fiican",
			},
			Category:     "nutrition",
			Type:         "pdf",
			DownloadURL:  "/resources/healthy-recipes.pdf",
			ThumbnailURL: "/images/recipes-thumb.jpg",
		},
	}
	for _, r := range resources {
		if _, err := s.CreateResource(ctx, r); err != nil {
			return fmt.Errorf("seed resource: %w", err)
		}
	}

	partners := []model.CreatePartnerRequest{
		{
			Name: "Abu Hurairah Centre",
			Description: model.LocalizedText{
				En: "Primary venue partner providing space for workshops and community engagement",
				So: "Saaxiibka ugu muhiimsan ee bixiya goobaha tababarrada iyo wadashaqeynta bulshada",
			},
			Type:       "primary",
			LogoURL:    "/images/abu-hurairah-logo.jpg",
			WebsiteURL: "http://abuhurairah.ca",
			Services:   []string{"Workshop hosting", "Community outreach", "Translation services"},
		},
		{
			Name: "Khalid bin Waleed Centre",
			Description: model.LocalizedText{
				En: "Women's programming partner focusing on culturally-appropriate health discussions",
				So: "Saaxiibka barnaamijyada haweenka ee diiradda saara wadahadalada caafimaadka ee ku haboon dhaqanka",
			},
			Type:       "primary",
			LogoURL:    "/images/khalid-centre-logo.jpg",
			WebsiteURL: "http://khalidcentre.ca",
			Services:   []string{"Women's workshops", "Mental health support", "Family programs"},
		},
	}
	for _, p := range partners {
		if _, err := s.CreatePartner(ctx, p); err != nil {
			return fmt.Errorf("seed partner: %w", err)
		}
	}

	team := []model.CreateTeamMemberRequest{
		{
			Name: "Ifrah Ismail",
			Role: model.LocalizedText{En: "Project Lead", So: "Hogaamiyaha Mashruuca"},
			Description: model.LocalizedText{
				En: "Coordinates program direction, manages partnerships, and ensures responsiveness to community feedback",
				So: "Waxay isku dubaridda jihada barnaamijka, maamusho iskaashiga, oo dammacdo inay ka jawaabto ra'yiga bulshada",
			},
			PhotoURL: "/images/ifrah-ismail.jpg",
			Email:    "ifrah@somalichealth.ca",
			Order:    1,
		},
		{
			Name: "Munira Ahmed",
			Role: model.LocalizedText{En: "Communication/Surveying", So: "Isgaarsiinta/Sahan-raadinta"},
			Description: model.LocalizedText{
				En: "Manages communication strategies, conducts community surveys, and produces impact reports",
				So: "Waxay maamusho xeeladaha isgaarsiinta, samaysa sahan-raadinta bulshada, oo soo saarta warbixinno saameyn",
			},
			PhotoURL: "/images/munira-ahmed.jpg",
			Email:    "munira@somalichealth.ca",
			Order:    2,
		},
		{
			Name: "Maqdis Ali",
			Role: model.LocalizedText{En: "Healthcare Coordinator", So: "Isku-dubbaridaha Caafimaadka"},
			Description: model.LocalizedText{
				En: "Ensures clinical accuracy and connects participants with culturally competent healthcare resources",
				So: "Waxay hubisaa saxnaanta caafimaadka oo ku xidha ka-qaybgalayaasha khayraadka caafimaadka ee ku haboon dhaqanka",
			},
			PhotoURL: "/images/maqdis-ali.jpg",
			Email:    "maqdis@somalichealth.ca",
			Order:    3,
		},
		{
			Name: "Muadh",
			Role: model.LocalizedText{En: "Information Technician", So: "Takhasoska Macluumaadka"},
			Description: model.LocalizedText{
				En: "Handles website development, design, and ensures digital accessibility across all platforms",
				So: "Wuxuu maamusho horumarinta websaydhka, naqshadaynta, oo hubiya gelitaanka dhijitaalka ah dhammaan goobaha",
			},
			PhotoURL: "/images/muadh.jpg",
			Email:    "muadh@somalichealth.ca",
			Order:    4,
		},
	}
	for _, m := range team {
		if _, err := s.CreateTeamMember(ctx, m); err != nil {
			return fmt.Errorf("seed team member: %w", err)
		}
	}

	return nil
}
