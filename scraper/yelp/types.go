package yelp

import "business-heatmap/models"

type searchResponse struct {
	Businesses []business `json:"businesses"`
	Total      int        `json:"total"`
	Region     *struct {
		Center *struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"center"`
	} `json:"region"`
}

type business struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Rating      *float64 `json:"rating"`
	Coordinates *struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"coordinates"`
	Location *struct {
		Address1 *string `json:"address1"`
		City     *string `json:"city"`
	} `json:"location"`
}

type autocompleteResponse struct {
	Categories []models.Category `json:"categories"`
}

type errorResponse struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// toPage keeps the nil/empty distinction of the businesses field.
func (r *searchResponse) toPage() *models.SearchPage {
	page := &models.SearchPage{Total: r.Total}
	if r.Region != nil && r.Region.Center != nil {
		page.Center = &models.Coordinates{
			Latitude:  r.Region.Center.Latitude,
			Longitude: r.Region.Center.Longitude,
		}
	}
	if r.Businesses == nil {
		return page
	}

	page.Businesses = make([]models.BusinessRecord, 0, len(r.Businesses))
	for _, b := range r.Businesses {
		rec := models.BusinessRecord{ID: b.ID, Name: b.Name, Rating: b.Rating}
		if b.Coordinates != nil {
			rec.Latitude = b.Coordinates.Latitude
			rec.Longitude = b.Coordinates.Longitude
		}
		if b.Location != nil {
			rec.Address = b.Location.Address1
			rec.City = b.Location.City
		}
		page.Businesses = append(page.Businesses, rec)
	}
	return page
}
