package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrProductNotFound means the barcode is not in the OpenFoodFacts database.
var ErrProductNotFound = errors.New("product not found")

// Product is what a barcode lookup returns. Nutrition values are per 100g.
type Product struct {
	Barcode        string  `json:"barcode"`
	Name           string  `json:"name"`
	ImageURL       string  `json:"imageUrl,omitempty"`
	Categories     string  `json:"categories"`
	NutritionGrade string  `json:"nutritionGrade"`
	Calories       int     `json:"calories"`
	Fat            float64 `json:"fat"`
	Carbs          float64 `json:"carbs"`
	Protein        float64 `json:"protein"`
}

// OpenFoodFactsService looks products up by barcode.
type OpenFoodFactsService struct {
	baseURL string
	client  *http.Client
}

func NewOpenFoodFactsService() *OpenFoodFactsService {
	return &OpenFoodFactsService{
		baseURL: "https://world.openfoodfacts.net",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type productResponse struct {
	Status  int `json:"status"`
	Product struct {
		ProductName     string `json:"product_name"`
		ImageURL        string `json:"image_url"`
		Categories      string `json:"categories"`
		NutritionGrades string `json:"nutrition_grades"`
		Nutriments      struct {
			EnergyKcal100g float64 `json:"energy-kcal_100g"`
			Fat100g        float64 `json:"fat_100g"`
			Carbs100g      float64 `json:"carbohydrates_100g"`
			Proteins100g   float64 `json:"proteins_100g"`
		} `json:"nutriments"`
	} `json:"product"`
}

// Lookup fetches a product by barcode. Missing nutrition fields default to
// zero; a status other than 1 means the product is unknown.
func (s *OpenFoodFactsService) Lookup(ctx context.Context, barcode string) (*Product, error) {
	u := fmt.Sprintf(
		"%s/api/v2/product/%s?fields=product_name,image_url,nutriments,nutrition_grades,categories",
		s.baseURL, barcode,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create product request: %w", err)
	}
	req.Header.Set("User-Agent", "PantryPal/1.0 (Go)")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call OpenFoodFacts: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read product response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenFoodFacts API error %d: %s", resp.StatusCode, string(body))
	}

	var pr productResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return nil, fmt.Errorf("failed to parse product JSON: %w", err)
	}
	if pr.Status != 1 {
		return nil, ErrProductNotFound
	}

	name := pr.Product.ProductName
	if name == "" {
		name = "Unknown Product"
	}
	grade := pr.Product.NutritionGrades
	if grade == "" {
		grade = "N/A"
	}

	return &Product{
		Barcode:        barcode,
		Name:           name,
		ImageURL:       pr.Product.ImageURL,
		Categories:     pr.Product.Categories,
		NutritionGrade: grade,
		Calories:       int(pr.Product.Nutriments.EnergyKcal100g),
		Fat:            pr.Product.Nutriments.Fat100g,
		Carbs:          pr.Product.Nutriments.Carbs100g,
		Protein:        pr.Product.Nutriments.Proteins100g,
	}, nil
}
