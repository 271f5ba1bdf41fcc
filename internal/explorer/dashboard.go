package explorer

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

var ErrNoCoordinates = errors.New("country has no coordinates")

const favoritesFetchLimit = 4

// CountryView holds one result per widget. A widget's error never hides
// another widget's data.
type CountryView struct {
	Country    *Country
	CountryErr error

	Weather    *Weather
	WeatherErr error

	Forecast    *Forecast
	ForecastErr error

	News    *Headlines
	NewsErr error
}

type Dashboard struct {
	Countries *CountriesClient
	Weather   *WeatherClient
	News      *NewsClient
}

func NewDashboard(opts Options) *Dashboard {
	return &Dashboard{
		Countries: NewCountriesClient(opts),
		Weather:   NewWeatherClient(opts),
		News:      NewNewsClient(opts),
	}
}

// CountryDetails loads the country first, since weather needs its coordinates
// and news its two-letter code, then the remaining widgets in parallel.
func (d *Dashboard) CountryDetails(ctx context.Context, code string) CountryView {
	var v CountryView

	v.Country, v.CountryErr = d.Countries.ByCode(ctx, code)
	if v.CountryErr != nil {
		v.WeatherErr = v.CountryErr
		v.ForecastErr = v.CountryErr
		v.NewsErr = v.CountryErr
		return v
	}

	lat, lon, hasCoords := v.Country.Coordinates()

	var g errgroup.Group
	g.Go(func() error {
		if !hasCoords {
			v.WeatherErr = ErrNoCoordinates
			return nil
		}
		v.Weather, v.WeatherErr = d.Weather.Current(ctx, lat, lon)
		return nil
	})
	g.Go(func() error {
		if !hasCoords {
			v.ForecastErr = ErrNoCoordinates
			return nil
		}
		v.Forecast, v.ForecastErr = d.Weather.Forecast(ctx, lat, lon)
		return nil
	})
	g.Go(func() error {
		v.News, v.NewsErr = d.News.TopHeadlines(ctx, v.Country.CCA2)
		return nil
	})
	_ = g.Wait()

	return v
}

// FavoriteCountries resolves every favourite code. Codes that fail are
// skipped and reported in the returned map instead of failing the whole page.
// It returns ErrLoginRequired when favs has no logged-in session.
func (d *Dashboard) FavoriteCountries(ctx context.Context, favs *Favorites) ([]Country, map[string]error, error) {
	codes, err := favs.List()
	if err != nil {
		return nil, nil, err
	}

	results := make([]*Country, len(codes))
	errs := make([]error, len(codes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(favoritesFetchLimit)
	for i, code := range codes {
		i, code := i, code
		g.Go(func() error {
			results[i], errs[i] = d.Countries.ByCode(gctx, code)
			return nil
		})
	}
	_ = g.Wait()

	var out []Country
	failed := make(map[string]error)
	for i, c := range results {
		if errs[i] != nil {
			failed[codes[i]] = errs[i]
			continue
		}
		out = append(out, *c)
	}
	return out, failed, nil
}
