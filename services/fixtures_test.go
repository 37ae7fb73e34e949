package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"livestock-app/models"
	"livestock-app/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testActor = 1

type fixture struct {
	t   *testing.T
	ctx context.Context
	db  *gorm.DB
}

func newFixture(t *testing.T) *fixture {
	return &fixture{t: t, ctx: context.Background(), db: testutil.NewDB(t)}
}

func (f *fixture) species(name string) models.Species {
	f.t.Helper()
	s := models.Species{Name: name}
	require.NoError(f.t, f.db.Create(&s).Error)
	return s
}

func (f *fixture) barn(name string) models.Barn {
	f.t.Helper()
	b := models.Barn{Name: name}
	require.NoError(f.t, f.db.Create(&b).Error)
	return b
}

func (f *fixture) disease(name string) models.Disease {
	f.t.Helper()
	d := models.Disease{Name: name}
	require.NoError(f.t, f.db.Create(&d).Error)
	return d
}

func (f *fixture) livestock(code string, speciesID uint, status models.LivestockStatus, weight float64) models.Livestock {
	f.t.Helper()
	l := models.Livestock{
		InspectionCode: code,
		SpeciesID:      speciesID,
		Status:         status,
		WeightOrigin:   weight,
		WeightEstimate: weight,
	}
	require.NoError(f.t, f.db.Create(&l).Error)
	return l
}

func (f *fixture) reload(l models.Livestock) models.Livestock {
	f.t.Helper()
	var fresh models.Livestock
	require.NoError(f.t, f.db.First(&fresh, l.ID).Error)
	return fresh
}

func monthsAgo(n int) *time.Time {
	t := time.Now().AddDate(0, -n, -1)
	return &t
}

// requireFiberError asserts err is a *fiber.Error with the given code and message.
func requireFiberError(t *testing.T, err error, code int, msg string) {
	t.Helper()
	require.Error(t, err)
	var fe *fiber.Error
	require.True(t, errors.As(err, &fe), "expected *fiber.Error, got %v", err)
	require.Equal(t, code, fe.Code)
	if msg != "" {
		require.Equal(t, msg, fe.Message)
	}
}
