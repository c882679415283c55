package services

import (
	"testing"

	"ume_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCityServiceForTest() CityService {
	return NewCityService(newFakeCityRepo(
		models.City{ID: 1, Name: "Алматы", Region: "Алматинская область"},
		models.City{ID: 2, Name: "Астана", Region: "Акмолинская область"},
	))
}

func TestCityService_List(t *testing.T) {
	svc := newCityServiceForTest()

	resp, err := svc.List(nil)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	require.Len(t, resp.Items, 2)
	names := []string{resp.Items[0].Name, resp.Items[1].Name}
	assert.Contains(t, names, "Алматы, Алматинская область")
	assert.Contains(t, names, "Астана, Акмолинская область")
}

func TestCityService_SearchEmptyQuery(t *testing.T) {
	svc := newCityServiceForTest()

	for _, query := range []string{"", "   ", "\t"} {
		resp, err := svc.Search(nil, query)
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Empty(t, resp.Items)
	}
}

func TestCityService_Search(t *testing.T) {
	svc := newCityServiceForTest()

	resp, err := svc.Search(nil, "  алм ")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, uint(1), resp.Items[0].ID)
	assert.Equal(t, "Алматы, Алматинская область", resp.Items[0].Name)
}

func TestNormalizeCityQuery(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"алматы", "Алматы"},
		{"  АЛМАТЫ  ", "Алматы"},
		{"moscow", "Moscow"},
		{"   ", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, normalizeCityQuery(tc.in), "query %q", tc.in)
	}
}
