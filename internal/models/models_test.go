package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"agritrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_Unmarshal(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  models.Number
	}{
		{"number", `{"amount": 2500}`, models.Number{Value: 2500, Present: true}},
		{"numeric string", `{"amount": "12.5"}`, models.Number{Value: 12.5, Present: true}},
		{"padded string", `{"amount": " 7 "}`, models.Number{Value: 7, Present: true}},
		{"garbage string", `{"amount": "abc"}`, models.Number{Present: true, Invalid: true}},
		{"nan string", `{"amount": "NaN"}`, models.Number{Present: true, Invalid: true}},
		{"boolean", `{"amount": true}`, models.Number{Present: true, Invalid: true}},
		{"null", `{"amount": null}`, models.Number{}},
		{"absent", `{}`, models.Number{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var body struct {
				Amount models.Number `json:"amount"`
			}
			require.NoError(t, json.Unmarshal([]byte(tc.input), &body))
			assert.Equal(t, tc.want, body.Amount)
		})
	}
}

func TestNumber_Ptr(t *testing.T) {
	assert.Nil(t, models.Number{}.Ptr())
	assert.Nil(t, models.Number{Present: true, Invalid: true}.Ptr())
	v := models.NewNumber(3).Ptr()
	require.NotNil(t, v)
	assert.Equal(t, 3.0, *v)
}

func TestParseDate(t *testing.T) {
	d, err := models.ParseDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = models.ParseDate("2024-03-01T23:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", models.FormatDate(d))

	d, err = models.ParseDate("2024-03-01T23:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = models.ParseDate("2024-03-02T00:15:00+03:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), d)

	_, err = models.ParseDate("01/03/2024")
	assert.ErrorIs(t, err, models.ErrInvalidDate)
}

func TestUserToClient_OmitsPasswordHash(t *testing.T) {
	u := models.User{
		ID:           "u1",
		Username:     "farmerA",
		Email:        "farmerA@agritrack.local",
		PasswordHash: "$2a$10$secret",
		CreatedAt:    time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	raw, err := json.Marshal(u.ToClient())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
	assert.JSONEq(t, `{"id":"u1","username":"farmerA","email":"farmerA@agritrack.local","created_at":"2024-03-01T08:00:00.000Z"}`, string(raw))
}

func TestExpenseToClient_TruncatesDate(t *testing.T) {
	e := models.Expense{
		ID:          "e1",
		FarmID:      "f1",
		Category:    "Seeds",
		Description: "Maize",
		Amount:      2500,
		Date:        time.Date(2024, 3, 1, 17, 45, 0, 0, time.UTC),
	}
	c := e.ToClient()
	assert.Equal(t, "2024-03-01", c.Date)
	assert.Equal(t, 2500.0, c.Amount)
}

func TestExpenseRoundTrip(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 15, 30, 123456789, time.UTC)
	e := models.Expense{
		ID: "e1", FarmID: "f1", Category: "Seeds", Description: "Maize", Amount: 2500,
		Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), CreatedAt: created, UpdatedAt: created,
	}
	raw, err := json.Marshal(e.ToClient())
	require.NoError(t, err)

	var back models.ExpenseClient
	require.NoError(t, json.Unmarshal(raw, &back))
	date, err := models.ParseDate(back.Date)
	require.NoError(t, err)
	ts, err := time.Parse(time.RFC3339Nano, back.CreatedAt)
	require.NoError(t, err)

	assert.Equal(t, e.Date, date)
	assert.Equal(t, created.Truncate(time.Second), ts.Truncate(time.Second))
	assert.Equal(t, e.Category, back.Category)
	assert.Equal(t, e.Amount, back.Amount)
}

func TestActivityToClient_CustomDate(t *testing.T) {
	a := models.Activity{ID: "a1", TimeFrame: models.TimeFrameToday, Priority: "low"}
	assert.Nil(t, a.ToClient().CustomDate)

	d := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	a.TimeFrame = models.TimeFrameCustom
	a.CustomDate = &d
	require.NotNil(t, a.ToClient().CustomDate)
	assert.Equal(t, "2024-05-10", *a.ToClient().CustomDate)
}

func TestActivityPatch_ClearCustomDate(t *testing.T) {
	d := time.Now()
	fields := models.ActivityPatch{CustomDate: &d, ClearCustomDate: true}.Fields()
	v, ok := fields["custom_date"]
	assert.True(t, ok)
	assert.Nil(t, v)
}

func TestComputeMetrics(t *testing.T) {
	m := models.ComputeMetrics(
		[]models.Expense{{Amount: 1000}},
		[]models.Income{{Amount: 4000}},
		[]models.Activity{{Completed: true}, {Completed: false}, {Completed: false}},
	)
	assert.Equal(t, models.DashboardMetrics{
		TotalExpenses:       1000,
		TotalIncome:         4000,
		NetProfit:           3000,
		ExpenseCount:        1,
		IncomeCount:         1,
		ActiveActivities:    2,
		CompletedActivities: 1,
		TotalActivities:     3,
	}, m)

	assert.Equal(t, models.DashboardMetrics{}, models.ComputeMetrics(nil, nil, nil))
}
