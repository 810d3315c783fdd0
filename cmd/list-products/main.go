package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Lists the storefront catalog with per-product stock counts. Reads
// API_BASE_URL from the environment (or .env); defaults to the local server.
func main() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	baseURL := strings.TrimRight(os.Getenv("API_BASE_URL"), "/")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	resp, err := http.Get(baseURL + "/v1/catalog/products")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to reach server: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "Server returned %s\n", resp.Status)
		os.Exit(1)
	}

	var result struct {
		Products []struct {
			ID       string  `json:"id"`
			Name     string  `json:"name"`
			Price    float64 `json:"price"`
			Category string  `json:"category"`
			Stock    []struct {
				Sold bool `json:"sold"`
			} `json:"stock"`
		} `json:"products"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	for _, p := range result.Products {
		unsold := 0
		for _, s := range p.Stock {
			if !s.Sold {
				unsold++
			}
		}
		fmt.Printf("%-38s %-12s L%8.2f  stock: %d/%d\n",
			p.Name, p.Category, p.Price, unsold, len(p.Stock))
	}
	fmt.Printf("\n%d products\n", len(result.Products))
}
