// ABOUTME: Record model for nutrition survey rows and the fixed column layout.
// ABOUTME: Defines column order, display headers, and positional parsing of CSV fields.
package models

import (
	"strconv"

	"github.com/harperreed/nutrition/internal/etlerr"
)

// Column names, in table and subset-file order.
const (
	ColID             = "ID"
	ColCancer         = "cancer"
	ColDiabetes       = "diabetes"
	ColHeartDisease   = "heart_disease"
	ColEggsFreq       = "EGGSFREQ"
	ColGreenSaladFreq = "GREENSALADFREQ"
	ColFriesFreq      = "FRIESFREQ"
	ColMilkFreq       = "MILKFREQ"
	ColSodaFreq       = "SODAFREQ"
	ColCoffeeFreq     = "COFFEEFREQ"
	ColCakesFreq      = "CAKESFREQ"
)

// Columns is the fixed column order shared by the subset file header,
// the insert statement and every SELECT * consumer.
var Columns = []string{
	ColID,
	ColCancer,
	ColDiabetes,
	ColHeartDisease,
	ColEggsFreq,
	ColGreenSaladFreq,
	ColFriesFreq,
	ColMilkFreq,
	ColSodaFreq,
	ColCoffeeFreq,
	ColCakesFreq,
}

// DisplayHeaders labels the columns of a full-row table, in Columns order.
var DisplayHeaders = []string{
	"ID", "Cancer", "Diabetes", "Heart Disease",
	"Eggs", "Salad", "Fries", "Milk", "Soda", "Coffee", "Cakes",
}

// textColumns are the positions of the free-text categorical columns.
var textColumns = map[int]bool{1: true, 2: true, 3: true}

// Record is one nutrition survey respondent.
type Record struct {
	ID             int64  `json:"id" yaml:"id"`
	Cancer         string `json:"cancer" yaml:"cancer"`
	Diabetes       string `json:"diabetes" yaml:"diabetes"`
	HeartDisease   string `json:"heart_disease" yaml:"heart_disease"`
	EggsFreq       int64  `json:"eggs_freq" yaml:"eggs_freq"`
	GreenSaladFreq int64  `json:"green_salad_freq" yaml:"green_salad_freq"`
	FriesFreq      int64  `json:"fries_freq" yaml:"fries_freq"`
	MilkFreq       int64  `json:"milk_freq" yaml:"milk_freq"`
	SodaFreq       int64  `json:"soda_freq" yaml:"soda_freq"`
	CoffeeFreq     int64  `json:"coffee_freq" yaml:"coffee_freq"`
	CakesFreq      int64  `json:"cakes_freq" yaml:"cakes_freq"`
}

// Values returns the record's fields in Columns order, for SQL binding.
func (r *Record) Values() []any {
	return []any{
		r.ID, r.Cancer, r.Diabetes, r.HeartDisease,
		r.EggsFreq, r.GreenSaladFreq, r.FriesFreq,
		r.MilkFreq, r.SodaFreq, r.CoffeeFreq, r.CakesFreq,
	}
}

// Pointers returns scan destinations in Columns order.
func (r *Record) Pointers() []any {
	return []any{
		&r.ID, &r.Cancer, &r.Diabetes, &r.HeartDisease,
		&r.EggsFreq, &r.GreenSaladFreq, &r.FriesFreq,
		&r.MilkFreq, &r.SodaFreq, &r.CoffeeFreq, &r.CakesFreq,
	}
}

// Strings returns the display cells in Columns order.
func (r *Record) Strings() []string {
	return []string{
		itoa(r.ID), r.Cancer, r.Diabetes, r.HeartDisease,
		itoa(r.EggsFreq), itoa(r.GreenSaladFreq), itoa(r.FriesFreq),
		itoa(r.MilkFreq), itoa(r.SodaFreq), itoa(r.CoffeeFreq), itoa(r.CakesFreq),
	}
}

// ParseRecord converts positional subset-file fields into a Record.
// Missing fields are treated as empty text, so a short row fails on the
// first integer column it lacks.
func ParseRecord(fields []string) (*Record, error) {
	var r Record
	ptrs := r.Pointers()

	for i, col := range Columns {
		raw := ""
		if i < len(fields) {
			raw = fields[i]
		}

		if textColumns[i] {
			*(ptrs[i].(*string)) = raw
			continue
		}

		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, etlerr.New(etlerr.KindParse, "parse "+col, "invalid integer %q", raw)
		}
		*(ptrs[i].(*int64)) = n
	}

	return &r, nil
}

// SodaSummary is the projection returned by the soda threshold filter.
type SodaSummary struct {
	ID        int64 `json:"id"`
	SodaFreq  int64 `json:"soda_freq"`
	EggsFreq  int64 `json:"eggs_freq"`
	FriesFreq int64 `json:"fries_freq"`
}

// Strings returns the display cells.
func (s SodaSummary) Strings() []string {
	return []string{itoa(s.ID), itoa(s.SodaFreq), itoa(s.EggsFreq), itoa(s.FriesFreq)}
}

// HeartSummary is the projection returned by the heart disease filter.
type HeartSummary struct {
	ID             int64 `json:"id"`
	EggsFreq       int64 `json:"eggs_freq"`
	GreenSaladFreq int64 `json:"green_salad_freq"`
	FriesFreq      int64 `json:"fries_freq"`
	SodaFreq       int64 `json:"soda_freq"`
}

// Strings returns the display cells.
func (h HeartSummary) Strings() []string {
	return []string{itoa(h.ID), itoa(h.EggsFreq), itoa(h.GreenSaladFreq), itoa(h.FriesFreq), itoa(h.SodaFreq)}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
