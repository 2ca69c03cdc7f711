// Package main is a terminal client for the Travel Planner API. It plays the
// role of the product's page layer: it owns the creation form input, shows
// the sample list to signed-out users, derives the favorites view, and turns
// API results into user-visible success and error messages.
//
// Usage:
//
//	planner browse                          list itineraries (samples when signed out)
//	planner favorites                       list favorite itineraries
//	planner create -title ... -dest ...     create an itinerary
//	planner favorite -id <uuid>             toggle the favorite flag
//	planner delete -id <uuid>               delete an itinerary
//	planner watch                           stream live snapshots (SSE)
//
// Configuration comes from PLANNER_API_URL (default http://localhost:8080)
// and PLANNER_TOKEN (bearer token; empty means signed out), with .env support.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/handler"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	c := &client{
		baseURL: envOr("PLANNER_API_URL", "http://localhost:8080"),
		token:   os.Getenv("PLANNER_TOKEN"),
		http:    http.DefaultClient,
	}

	var err error
	switch os.Args[1] {
	case "browse":
		err = c.browse(false)
	case "favorites":
		err = c.favorites()
	case "create":
		err = c.create(os.Args[2:])
	case "favorite":
		err = c.toggleFavorite(os.Args[2:])
	case "delete":
		err = c.delete(os.Args[2:])
	case "watch":
		err = c.watch()
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// envOr returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: planner <browse|favorites|create|favorite|delete|watch> [flags]")
}

type client struct {
	baseURL string
	token   string
	http    *http.Client
}

func (c *client) signedIn() bool { return c.token != "" }

// browse prints the itinerary list: real records when signed in, the fixed
// sample list when not.
func (c *client) browse(onlyFavorites bool) error {
	path := "/api/v1/samples"
	if c.signedIn() {
		path = "/api/v1/itineraries"
		if onlyFavorites {
			path += "?favorites=true"
		}
	}

	var list handler.ItineraryListResponse
	if err := c.getJSON(path, &list); err != nil {
		return err
	}

	if len(list.Data) == 0 {
		if onlyFavorites {
			fmt.Println("No favorites yet. Start exploring itineraries and save your favorites here.")
		} else {
			fmt.Println("No itineraries yet. Create one with: planner create")
		}
		return nil
	}

	for _, it := range list.Data {
		printItinerary(it)
	}
	if !c.signedIn() {
		fmt.Println("Sign in (set PLANNER_TOKEN) to save and manage your own itineraries.")
	}
	return nil
}

// favorites prints the favorites view, which only exists for signed-in users.
func (c *client) favorites() error {
	if !c.signedIn() {
		fmt.Println("Sign in (set PLANNER_TOKEN) to save favorites.")
		return nil
	}
	return c.browse(true)
}

// create submits the creation form. The activities flag takes the form's
// comma-separated string; it is split, trimmed, and cleaned of empty entries
// before submission, and the dates are passed through only when supplied.
func (c *client) create(args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	title := fs.String("title", "", "trip title (required)")
	dest := fs.String("dest", "", "destination (required)")
	tripType := fs.String("type", "adventure", "trip type: adventure, leisure, or work")
	duration := fs.String("duration", "", "duration, e.g. \"7 days\" (required)")
	activities := fs.String("activities", "", "comma-separated activities (required)")
	start := fs.String("start", "", "start date (2006-01-02)")
	end := fs.String("end", "", "end date (2006-01-02)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !c.signedIn() {
		fmt.Println("Sign in (set PLANNER_TOKEN) to create itineraries.")
		return nil
	}
	if *title == "" || *dest == "" || *duration == "" || *activities == "" {
		fs.Usage()
		return fmt.Errorf("title, dest, duration, and activities are required")
	}

	req := handler.CreateItineraryRequest{
		Title:       *title,
		Destination: *dest,
		Type:        *tripType,
		Duration:    *duration,
		Activities:  domain.ParseActivities(*activities),
	}
	var err error
	if req.StartDate, err = parseDate(*start); err != nil {
		return err
	}
	if req.EndDate, err = parseDate(*end); err != nil {
		return err
	}

	var created handler.ItineraryResponse
	if err := c.doJSON(http.MethodPost, "/api/v1/itineraries", req, &created); err != nil {
		return fmt.Errorf("failed to create itinerary: %w", err)
	}
	fmt.Println("Itinerary created! Your travel itinerary has been saved successfully.")
	printItinerary(created)
	return nil
}

// toggleFavorite flips the favorite flag on one record.
func (c *client) toggleFavorite(args []string) error {
	fs := flag.NewFlagSet("favorite", flag.ExitOnError)
	id := fs.String("id", "", "itinerary id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !c.signedIn() {
		fmt.Println("Sign in (set PLANNER_TOKEN) to save favorites.")
		return nil
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	var updated handler.ItineraryResponse
	if err := c.doJSON(http.MethodPost, "/api/v1/itineraries/"+*id+"/favorite", nil, &updated); err != nil {
		return err
	}
	if updated.IsFavorite {
		fmt.Println("Added to favorites.")
	} else {
		fmt.Println("Removed from favorites.")
	}
	return nil
}

// delete removes one record.
func (c *client) delete(args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.String("id", "", "itinerary id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if !c.signedIn() {
		fmt.Println("Sign in (set PLANNER_TOKEN) to manage itineraries.")
		return nil
	}
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	if err := c.doJSON(http.MethodDelete, "/api/v1/itineraries/"+*id, nil, nil); err != nil {
		return err
	}
	fmt.Println("Itinerary deleted.")
	return nil
}

// watch streams the live view over SSE, reprinting the list on every snapshot.
func (c *client) watch() error {
	if !c.signedIn() {
		fmt.Println("Sign in (set PLANNER_TOKEN) to watch your itineraries.")
		return nil
	}

	req, err := http.NewRequest(http.MethodGet, c.baseURL+"/api/v1/itineraries/watch", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("watch: %s", resp.Status)
	}

	fmt.Println("Watching for changes (Ctrl-C to stop)...")
	var event string
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data := strings.TrimPrefix(line, "data: ")
			if event != "snapshot" {
				fmt.Println("Live query error; still listening.")
				continue
			}
			var items []handler.ItineraryResponse
			if err := json.Unmarshal([]byte(data), &items); err != nil {
				return fmt.Errorf("decode snapshot: %w", err)
			}
			fmt.Printf("--- snapshot (%d itineraries) ---\n", len(items))
			for _, it := range items {
				printItinerary(it)
			}
		}
	}
	return scanner.Err()
}

// --- HTTP helpers -----------------------------------------------------------

func (c *client) getJSON(path string, out any) error {
	return c.doJSON(http.MethodGet, path, nil, out)
}

// doJSON performs one API call, decoding the standard error envelope on
// non-2xx responses so failures print as readable messages.
func (c *client) doJSON(method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = strings.NewReader(string(b))
	}

	req, err := http.NewRequest(method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.signedIn() {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope handler.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error.Message != "" {
			return fmt.Errorf("%s", envelope.Error.Message)
		}
		return fmt.Errorf("%s", resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// --- formatting -------------------------------------------------------------

func printItinerary(it handler.ItineraryResponse) {
	fav := " "
	if it.IsFavorite {
		fav = "*"
	}
	fmt.Printf("%s [%s] %s — %s (%s)\n", fav, it.Type, it.Title, it.Destination, it.Duration)
	if len(it.Activities) > 0 {
		fmt.Printf("    activities: %s\n", strings.Join(it.Activities, ", "))
	}
	if it.StartDate != nil && it.EndDate != nil {
		fmt.Printf("    dates: %s to %s\n", it.StartDate.Format("2006-01-02"), it.EndDate.Format("2006-01-02"))
	}
	fmt.Printf("    id: %s\n", it.ID)
}

func parseDate(s string) (*openapi_types.Date, error) {
	if s == "" {
		return nil, nil
	}
	var d openapi_types.Date
	if err := d.UnmarshalJSON([]byte(`"` + s + `"`)); err != nil {
		return nil, fmt.Errorf("invalid date %q (want 2006-01-02)", s)
	}
	return &d, nil
}
