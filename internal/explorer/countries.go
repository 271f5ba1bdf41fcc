package explorer

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Regions offered by the region filter.
var Regions = []string{"Africa", "Americas", "Asia", "Europe", "Oceania"}

const countryFields = "name,cca2,cca3,capital,region,subregion,population,flags,languages,latlng,capitalInfo"

type Country struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	CCA2       string            `json:"cca2"`
	CCA3       string            `json:"cca3"`
	Capital    []string          `json:"capital"`
	Region     string            `json:"region"`
	Subregion  string            `json:"subregion"`
	Population int64             `json:"population"`
	Languages  map[string]string `json:"languages"`
	Latlng     []float64         `json:"latlng"`
	Flags      struct {
		PNG string `json:"png"`
		SVG string `json:"svg"`
		Alt string `json:"alt"`
	} `json:"flags"`
	CapitalInfo struct {
		Latlng []float64 `json:"latlng"`
	} `json:"capitalInfo"`
}

// Coordinates prefers the capital's position and falls back to the country centre.
func (c Country) Coordinates() (lat, lon float64, ok bool) {
	if len(c.CapitalInfo.Latlng) == 2 {
		return c.CapitalInfo.Latlng[0], c.CapitalInfo.Latlng[1], true
	}
	if len(c.Latlng) == 2 {
		return c.Latlng[0], c.Latlng[1], true
	}
	return 0, 0, false
}

type CountriesClient struct {
	c httpClient
}

func NewCountriesClient(opts Options) *CountriesClient {
	return &CountriesClient{c: newHTTPClient("countries", strings.TrimRight(opts.CountriesURL, "/"), opts.HTTPClient, opts.Logger)}
}

func (cc *CountriesClient) All(ctx context.Context) ([]Country, error) {
	var out []Country
	err := cc.c.getJSON(ctx, "/all", url.Values{"fields": {countryFields}}, &out)
	return out, err
}

// SearchByName fetches a fresh list; an empty query returns every country.
func (cc *CountriesClient) SearchByName(ctx context.Context, name string) ([]Country, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return cc.All(ctx)
	}
	var out []Country
	err := cc.c.getJSON(ctx, "/name/"+url.PathEscape(name), url.Values{"fields": {countryFields}}, &out)
	return out, err
}

// ByRegion fetches a fresh list; an empty region returns every country.
func (cc *CountriesClient) ByRegion(ctx context.Context, region string) ([]Country, error) {
	region = strings.TrimSpace(region)
	if region == "" {
		return cc.All(ctx)
	}
	if !validRegion(region) {
		return nil, fmt.Errorf("unknown region %q", region)
	}
	var out []Country
	err := cc.c.getJSON(ctx, "/region/"+url.PathEscape(region), url.Values{"fields": {countryFields}}, &out)
	return out, err
}

func (cc *CountriesClient) ByCode(ctx context.Context, code string) (*Country, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrNotFound
	}
	var out []Country
	if err := cc.c.getJSON(ctx, "/alpha/"+url.PathEscape(code), nil, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}
	return &out[0], nil
}

func validRegion(region string) bool {
	for _, r := range Regions {
		if strings.EqualFold(r, region) {
			return true
		}
	}
	return false
}
