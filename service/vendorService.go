package service

import (
	"context"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"github.com/mvdwal/festival-companion/entity"
	"github.com/mvdwal/festival-companion/repository"
	"github.com/mvdwal/festival-companion/util"

	"golang.org/x/exp/slices"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const searchSimilarityThreshold = 0.7

type VendorService struct {
	vendorRepository *repository.VendorRepository

	vendors []*entity.Vendor
}

func NewVendorService(vendorRepository *repository.VendorRepository) *VendorService {
	return &VendorService{
		vendorRepository: vendorRepository,
	}
}

// Load reads the vendor fixture once at startup.
func (s *VendorService) Load(ctx context.Context) error {
	vendors, err := s.vendorRepository.FindAll(ctx)
	if err != nil {
		return err
	}

	slices.SortStableFunc(vendors, func(a, b *entity.Vendor) int {
		return strings.Compare(a.Name, b.Name)
	})

	s.vendors = vendors
	return nil
}

// Categories returns the distinct vendor categories, sorted.
func (s *VendorService) Categories() []string {
	var categories []string
	for _, vendor := range s.vendors {
		if vendor.Category != "" {
			categories = append(categories, vendor.Category)
		}
	}
	categories = util.Unique(categories)
	slices.Sort(categories)
	return categories
}

// FindMany filters vendors by category and a fuzzy name query. An empty or
// "all" category matches everything; the query tolerates typos and accents.
func (s *VendorService) FindMany(category, query string) []*entity.Vendor {
	query = foldForSearch(query)

	var vendors []*entity.Vendor
	for _, vendor := range s.vendors {
		if category != "" && category != "all" && !strings.EqualFold(vendor.Category, category) {
			continue
		}
		if query != "" && !matchesQuery(vendor, query) {
			continue
		}
		vendors = append(vendors, vendor)
	}

	return vendors
}

func matchesQuery(vendor *entity.Vendor, query string) bool {
	name := foldForSearch(vendor.Name)
	if strings.Contains(name, query) {
		return true
	}

	similarity, err := edlib.StringsSimilarity(query, name, edlib.Levenshtein)
	if err != nil {
		return false
	}

	return similarity >= searchSimilarityThreshold
}

// foldForSearch lowercases and strips diacritics so "Crepe" finds "Crêpe".
func foldForSearch(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(strings.TrimSpace(folded))
}
