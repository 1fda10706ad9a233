package analytics

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"fuelmx/pkg/contracts/domain"
)

// ComputeAll runs every aggregate over the reconciled inputs and assembles
// the ResultSet. The station, price, and volume families are independent
// of each other and run concurrently; the market-value estimate needs the
// national averages and reference-year volumes, so it runs after the
// families complete. All aggregates are pure over their inputs, which makes
// the fan-out safe without locking.
func (a *Analyzer) ComputeAll(ctx context.Context, in Inputs) (*domain.ResultSet, error) {
	start := time.Now()
	a.logger.InfoContext(ctx, "starting analytics computation",
		slog.Int("stations", len(in.Stations)),
		slog.Int("volume_records", len(in.Volumes)),
		slog.Int("states", in.Roster.Len()),
		slog.Int("reference_year", a.opts.ReferenceYear))

	results := &domain.ResultSet{
		GeneratedAt:   time.Now().UTC(),
		ReferenceYear: a.opts.ReferenceYear,
		Format:        domain.ResultSetFormat,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		results.StationsPerState = a.StationsPerState(in)
		results.StationsPerMunicipality = a.StationsPerMunicipality(in)
		results.TopMunicipalities = a.TopMunicipalitiesByStations(in)
		results.Availability = a.ProductAvailability(in)
		results.StationsPerMunicipalityAverage = a.StationsPerMunicipalityAverage(in)
		return nil
	})

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		results.NationalAveragePrices = a.NationalAveragePrices(in)
		results.StatePrices = a.StatePriceStats(in)
		results.MunicipalityPrices = a.MunicipalityPriceStats(in)
		results.TopMunicipalityPrices = a.TopMunicipalityPrices(in)
		results.TopMunicipalityDeviations = a.TopMunicipalityDeviations(in)
		return nil
	})

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		results.VolumeByFuel = a.VolumeByFuel(in)
		results.VolumeByStateFuel = a.VolumeByStateFuel(in)
		results.VolumePerCapita = a.VolumePerCapita(in)
		results.VolumePerStation = a.VolumePerStation(in)
		results.HistoricalVolume = a.HistoricalVolume(in)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	results.MarketValue = a.MarketValue(in)

	a.logger.InfoContext(ctx, "analytics computation complete",
		slog.Duration("elapsed", time.Since(start)))
	return results, nil
}
