// Package envinfo reports on the toolkit's runtime environment: build
// information and public network details.
package envinfo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"runtime/debug"
	"time"

	"genaikit/internal/logging"
)

// Check prints the Go runtime version and the module's direct build
// dependencies.
func Check(w io.Writer) {
	fmt.Fprintf(w, "Go version: %s (%s/%s)\n\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)

	info, ok := debug.ReadBuildInfo()
	if !ok {
		fmt.Fprintln(w, "Build info not available")
		return
	}

	fmt.Fprintf(w, "Module: %s\n", info.Main.Path)
	fmt.Fprintln(w, "Dependencies:")
	for _, dep := range info.Deps {
		fmt.Fprintf(w, "  %s %s\n", dep.Path, dep.Version)
	}
}

// IPDetails holds the geo information for the current public IP.
type IPDetails struct {
	IP       string `json:"ip"`
	Hostname string `json:"hostname"`
	City     string `json:"city"`
	Region   string `json:"region"`
	Country  string `json:"country"`
	Loc      string `json:"loc"`
	Org      string `json:"org"`
	Postal   string `json:"postal"`
	Timezone string `json:"timezone"`
}

const ipinfoURL = "https://ipinfo.io"

// IPInfo fetches geo details for the current public IP from ipinfo.io.
func IPInfo(ctx context.Context) (*IPDetails, error) {
	return fetchIPInfo(ctx, ipinfoURL)
}

func fetchIPInfo(ctx context.Context, url string) (*IPDetails, error) {
	client := &http.Client{Timeout: 10 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build ipinfo request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch IP details: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ipinfo returned status %d", resp.StatusCode)
	}

	var details IPDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, fmt.Errorf("failed to decode ipinfo response: %w", err)
	}

	logging.API("Fetched IP details for %s", details.IP)
	return &details, nil
}

// WriteIPDetails prints the details line by line.
func WriteIPDetails(w io.Writer, d *IPDetails) {
	fmt.Fprintf(w, "IP address: %s\n", d.IP)
	fmt.Fprintf(w, "Hostname:   %s\n", d.Hostname)
	fmt.Fprintf(w, "City:       %s\n", d.City)
	fmt.Fprintf(w, "Region:     %s\n", d.Region)
	fmt.Fprintf(w, "Country:    %s\n", d.Country)
	fmt.Fprintf(w, "Location:   %s\n", d.Loc)
	fmt.Fprintf(w, "Provider:   %s\n", d.Org)
	fmt.Fprintf(w, "Postal:     %s\n", d.Postal)
	fmt.Fprintf(w, "Timezone:   %s\n", d.Timezone)
}
