package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Ojaswi-pandey-1106/PantryPal/models"
)

// ErrRecipeNotFound means the recipe id is unknown to the API.
var ErrRecipeNotFound = errors.New("recipe not found")

// SpoonacularService fetches recipe suggestions and details from the
// Spoonacular API.
type SpoonacularService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewSpoonacularService(apiKey string) *SpoonacularService {
	return &SpoonacularService{
		apiKey:  apiKey,
		baseURL: "https://api.spoonacular.com",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// FindByIngredients searches recipes that can be made from the given
// ingredient names. ranking=2 ranks by used-ingredient count so the best
// pantry matches come first.
func (s *SpoonacularService) FindByIngredients(ctx context.Context, ingredients []string) ([]models.Recipe, error) {
	if len(ingredients) == 0 {
		return []models.Recipe{}, nil
	}

	q := url.Values{}
	q.Set("apiKey", s.apiKey)
	q.Set("ingredients", strings.Join(ingredients, ","))
	q.Set("number", "100")
	q.Set("ranking", "2")
	q.Set("ignorePantry", "false")
	u := fmt.Sprintf("%s/recipes/findByIngredients?%s", s.baseURL, q.Encode())

	body, err := s.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var recipes []models.Recipe
	if err := json.Unmarshal(body, &recipes); err != nil {
		return nil, fmt.Errorf("failed to parse recipes JSON: %w", err)
	}
	return recipes, nil
}

// RecipeInformation fetches full details for one recipe.
func (s *SpoonacularService) RecipeInformation(ctx context.Context, recipeID int) (*models.Recipe, error) {
	u := fmt.Sprintf("%s/recipes/%d/information?apiKey=%s", s.baseURL, recipeID, s.apiKey)

	body, err := s.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var recipe models.Recipe
	if err := json.Unmarshal(body, &recipe); err != nil {
		return nil, fmt.Errorf("failed to parse recipe JSON: %w", err)
	}
	return &recipe, nil
}

// DownloadImage fetches a recipe image and returns the raw bytes with their
// content type.
func (s *SpoonacularService) DownloadImage(ctx context.Context, imageURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create image request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("image download error %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (s *SpoonacularService) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create recipe request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Spoonacular: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Spoonacular response: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrRecipeNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spoonacular API error %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
