package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"business-heatmap/models"
	"business-heatmap/utils"
)

// InsightService summarises a session's businesses for the console.
type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

// Generate computes the report over rating-weighted rows, whose Weight is
// the business rating.
func (s *InsightService) Generate(rows []models.CanonicalRow) *models.InsightReport {
	report := &models.InsightReport{
		BusinessesByCity: make(map[string]int),
	}

	if len(rows) == 0 {
		return report
	}

	report.TotalBusinesses = len(rows)

	rated := make([]models.CanonicalRow, 0, len(rows))
	for _, r := range rows {
		if r.Weight > 0 {
			rated = append(rated, r)
		}
		if r.City != "" {
			report.BusinessesByCity[r.City]++
		}
	}
	report.RatedBusinesses = len(rated)

	if len(rated) > 0 {
		report.MinRating = rated[0].Weight
		report.MaxRating = rated[0].Weight
		var total float64
		for _, r := range rated {
			total += r.Weight
			if r.Weight < report.MinRating {
				report.MinRating = r.Weight
			}
			if r.Weight > report.MaxRating {
				report.MaxRating = r.Weight
			}
		}
		report.AverageRating = round2(total / float64(len(rated)))
	}

	// Top 5 by rating, ties keep API order
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].Weight > rated[j].Weight
	})
	if len(rated) > 5 {
		report.TopRated = rated[:5]
	} else {
		report.TopRated = rated
	}

	s.logger.Debug("[insights] %d businesses, %d rated, %d cities",
		report.TotalBusinesses, report.RatedBusinesses, len(report.BusinessesByCity))
	return report
}

// PrintTable writes the rows as an aligned console table.
func (s *InsightService) PrintTable(w io.Writer, rows []models.CanonicalRow) {
	fmt.Fprintf(w, "\n  %-4s %-32s %10s %11s %6s  %-28s %s\n",
		"#", "Name", "lat", "lon", "Amount", "Address", "City")
	fmt.Fprintf(w, "  %s\n", strings.Repeat("─", 110))
	for i, r := range rows {
		fmt.Fprintf(w, "  %-4d %-32s %10.5f %11.5f %6.1f  %-28s %s\n",
			i, truncate(r.Name, 32), r.Latitude, r.Longitude, r.Weight, truncate(r.Address, 28), r.City)
	}
	fmt.Fprintln(w)
}

// Print writes the report in a coloured summary block.
func (s *InsightService) Print(w io.Writer, q models.SearchQuery, r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  BUSINESS MAP: %s in %s\033[0m\n", q.Category, q.Location)
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Businesses mapped : \033[1m%d\033[0m\n", r.TotalBusinesses)
	fmt.Fprintf(w, "  With a rating     : \033[1m%d\033[0m\n", r.RatedBusinesses)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Ratings\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if r.RatedBusinesses > 0 {
		fmt.Fprintf(w, "  Average rating : \033[1;32m%.2f\033[0m\n", r.AverageRating)
		fmt.Fprintf(w, "  Lowest rating  : \033[1;32m%.1f\033[0m\n", r.MinRating)
		fmt.Fprintf(w, "  Highest rating : \033[1;32m%.1f\033[0m\n", r.MaxRating)
	} else {
		fmt.Fprintf(w, "  No rating data available\n")
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Top 5 Highest Rated\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.TopRated) == 0 {
		fmt.Fprintf(w, "  No rated businesses found\n")
	} else {
		for i, b := range r.TopRated {
			fmt.Fprintf(w, "  \033[1m%d.\033[0m %-40s \033[1;32m%.1f ★\033[0m\n",
				i+1, truncate(b.Name, 38), b.Weight)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Businesses by City\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.BusinessesByCity) == 0 {
		fmt.Fprintf(w, "  No city data\n")
	} else {
		type cityCount struct {
			city  string
			count int
		}
		cities := make([]cityCount, 0, len(r.BusinessesByCity))
		for city, cnt := range r.BusinessesByCity {
			cities = append(cities, cityCount{city, cnt})
		}
		sort.Slice(cities, func(i, j int) bool {
			if cities[i].count != cities[j].count {
				return cities[i].count > cities[j].count
			}
			return cities[i].city < cities[j].city
		})
		for _, cc := range cities {
			bar := strings.Repeat("█", min(cc.count, 40))
			fmt.Fprintf(w, "  %-30s %s (%d)\n", truncate(cc.city, 28), bar, cc.count)
		}
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
