package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkin-guide/apperr"
	"checkin-guide/models"
)

func TestCopySettings(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	a := env.createApartment(t, "A", "1", map[models.Field]string{
		models.FieldWifiName:     "SeaView",
		models.FieldWifiPassword: "abc123",
	})
	b := env.createApartment(t, "B", "2", map[models.Field]string{models.FieldWifiName: "Old"})
	c := env.createApartment(t, "C", "3", nil)

	report, err := env.bulk.CopySettings(ctx, a.ID, []string{b.ID, a.ID, c.ID, b.ID},
		[]models.Field{models.FieldWifiName, models.FieldWifiPassword, models.FieldEntranceCode})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Requested)
	assert.Equal(t, 2, report.Applied)
	assert.Zero(t, report.Failed)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, report.Skipped)
	assert.Equal(t, "Применено к 2 из 2", report.Summary())

	for _, id := range []string{b.ID, c.ID} {
		got, err := env.apartments.load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "SeaView", models.Deref(got.WifiName))
		assert.Equal(t, "abc123", models.Deref(got.WifiPassword))
		assert.Nil(t, got.EntranceCode)
	}
	gotB, _ := env.apartments.load(ctx, b.ID)
	assert.Equal(t, "B", gotB.Title)

	src, _ := env.apartments.load(ctx, a.ID)
	assert.Equal(t, "A", src.Title)
}

func TestCopySettingsRejects(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	a := env.createApartment(t, "A", "1", nil)

	_, err := env.bulk.CopySettings(ctx, a.ID, []string{"x"}, []models.Field{models.FieldTitle})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = env.bulk.CopySettings(ctx, a.ID, []string{a.ID}, []models.Field{models.FieldWifiName})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = env.bulk.CopySettings(ctx, a.ID, []string{"x"}, nil)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestMassUpdate(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	a := env.createApartment(t, "A", "1", nil)
	b := env.createApartment(t, "B", "2", nil)

	var p models.ApartmentPatch
	p.Set(models.FieldEntranceCode, "77K")
	report, err := env.bulk.MassUpdate(ctx, []string{a.ID, "missing", b.ID}, p)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Requested)
	assert.Equal(t, 2, report.Applied)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Results, 3)
	assert.Equal(t, TargetResult{ID: "missing", OK: false, Error: "Квартира не найдена"}, report.Results[1])

	for _, id := range []string{a.ID, b.ID} {
		got, err := env.apartments.load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "77K", models.Deref(got.EntranceCode))
	}
}

func TestMassUpdateRejectsEmptyInput(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	a := env.createApartment(t, "A", "1", nil)

	var p models.ApartmentPatch
	p.Set(models.FieldLockCode, "1")
	_, err := env.bulk.MassUpdate(ctx, nil, p)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = env.bulk.MassUpdate(ctx, []string{a.ID}, models.ApartmentPatch{})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	got, _ := env.apartments.load(ctx, a.ID)
	assert.Nil(t, got.LockCode)
}

func TestCopyTargets(t *testing.T) {
	env := newTestEnv(t, nil)
	a := env.createApartment(t, "A", "1", nil)
	b := env.createApartment(t, "B", "2", nil)

	list, err := env.bulk.CopyTargets(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.ID, list[0].ID)
}
