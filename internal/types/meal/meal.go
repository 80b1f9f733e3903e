package meal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeBreakfast Type = "breakfast"
	TypeLunch     Type = "lunch"
	TypeDinner    Type = "dinner"
	TypeSnack     Type = "snack"
)

func (t Type) Valid() bool {
	switch t {
	case TypeBreakfast, TypeLunch, TypeDinner, TypeSnack:
		return true
	}
	return false
}

// Item is one food entry inside a meal. Resolved is false when the external
// nutrition lookup had no data for it; the item stays visible but contributes
// zero to the totals.
type Item struct {
	Name        string  `json:"name"`
	PortionSize float64 `json:"portion_size"`
	Unit        string  `json:"unit"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	Fiber       float64 `json:"fiber"`
	Resolved    bool    `json:"resolved"`
}

type Totals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

func (t Totals) Add(o Totals) Totals {
	return Totals{
		Calories: t.Calories + o.Calories,
		Protein:  t.Protein + o.Protein,
		Carbs:    t.Carbs + o.Carbs,
		Fat:      t.Fat + o.Fat,
		Fiber:    t.Fiber + o.Fiber,
	}
}

// Record is one logged meal. Totals must always equal the elementwise sum of
// Items; Recompute and OverrideTotals are the only sanctioned ways to change
// either side.
type Record struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	DateKey   string    `json:"date_key" db:"date_key"`
	Type      Type      `json:"meal_type" db:"meal_type"`
	Items     []Item    `json:"items"`
	Totals    Totals    `json:"totals"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Recompute derives Totals from Items.
func (r *Record) Recompute() {
	var t Totals
	for _, it := range r.Items {
		t.Calories += it.Calories
		t.Protein += it.Protein
		t.Carbs += it.Carbs
		t.Fat += it.Fat
		t.Fiber += it.Fiber
	}
	r.Totals = t
}

// OverrideTotals applies a manual totals edit. The item list is collapsed to
// a single synthetic entry carrying the overridden values, so the
// totals-equal-sum-of-items invariant keeps holding trivially.
func (r *Record) OverrideTotals(t Totals) {
	r.Items = []Item{{
		Name:     "manual entry",
		Unit:     "serving",
		Calories: t.Calories,
		Protein:  t.Protein,
		Carbs:    t.Carbs,
		Fat:      t.Fat,
		Fiber:    t.Fiber,
		Resolved: true,
	}}
	r.Totals = t
}

// Validate checks the fields a client controls directly.
func (r *Record) Validate() error {
	if !r.Type.Valid() {
		return fmt.Errorf("invalid meal type %q", r.Type)
	}
	if r.DateKey == "" {
		return fmt.Errorf("date key is required")
	}
	return nil
}

type CreateRequest struct {
	DateKey string `json:"date_key"`
	Type    Type   `json:"meal_type"`
	Items   []Item `json:"items"`
}

type ReplaceRequest struct {
	Items  []Item  `json:"items,omitempty"`
	Totals *Totals `json:"totals,omitempty"`
}
