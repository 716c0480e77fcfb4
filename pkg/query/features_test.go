package query

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestFilterDropsReservedParams(t *testing.T) {
	f := New(map[string]string{
		"page":       "2",
		"sort":       "-price",
		"limit":      "5",
		"fields":     "name,price",
		"difficulty": "easy",
	}).Filter()

	got := f.Conditions()
	for _, reserved := range []string{"page", "sort", "limit", "fields"} {
		if _, ok := got[reserved]; ok {
			t.Errorf("reserved param %q leaked into conditions: %v", reserved, got)
		}
	}
	if got["difficulty"] != "easy" {
		t.Errorf("expected difficulty=easy, got %v", got["difficulty"])
	}
}

func TestFilterOperatorMapping(t *testing.T) {
	tests := []struct {
		name   string
		params map[string]string
		want   bson.M
	}{
		{
			name:   "Simple Equality",
			params: map[string]string{"difficulty": "easy"},
			want:   bson.M{"difficulty": "easy"},
		},
		{
			name:   "Greater Than Or Equal",
			params: map[string]string{"price[gte]": "500"},
			want:   bson.M{"price": bson.M{"$gte": 500.0}},
		},
		{
			name:   "Less Than",
			params: map[string]string{"duration[lt]": "7"},
			want:   bson.M{"duration": bson.M{"$lt": 7.0}},
		},
		{
			name:   "Two Operators One Field",
			params: map[string]string{"price[gt]": "100", "price[lte]": "900"},
			want:   bson.M{"price": bson.M{"$gt": 100.0, "$lte": 900.0}},
		},
		{
			name:   "Unknown Operator Dropped",
			params: map[string]string{"price[regex]": "x"},
			want:   bson.M{},
		},
		{
			name:   "Boolean Coercion",
			params: map[string]string{"secretTour": "false"},
			want:   bson.M{"secretTour": false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New(tt.params).Filter().Conditions()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Filter() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSort(t *testing.T) {
	f := New(map[string]string{"sort": "-price,ratingsAverage"}).Sort()
	want := bson.D{{Key: "price", Value: -1}, {Key: "ratingsAverage", Value: 1}}
	if !reflect.DeepEqual(f.Options().Sort, want) {
		t.Errorf("Sort() = %v, want %v", f.Options().Sort, want)
	}

	def := New(map[string]string{}).Sort()
	wantDef := bson.D{{Key: "createdAt", Value: -1}}
	if !reflect.DeepEqual(def.Options().Sort, wantDef) {
		t.Errorf("default Sort() = %v, want %v", def.Options().Sort, wantDef)
	}
}

func TestLimitFields(t *testing.T) {
	f := New(map[string]string{"fields": "name,price"}).LimitFields()
	want := bson.M{"name": 1, "price": 1}
	if !reflect.DeepEqual(f.Options().Projection, want) {
		t.Errorf("LimitFields() = %v, want %v", f.Options().Projection, want)
	}

	def := New(map[string]string{}).LimitFields()
	wantDef := bson.M{"__v": 0}
	if !reflect.DeepEqual(def.Options().Projection, wantDef) {
		t.Errorf("default LimitFields() = %v, want %v", def.Options().Projection, wantDef)
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		params    map[string]string
		wantSkip  int64
		wantLimit int64
	}{
		{"Page Two Limit Five", map[string]string{"page": "2", "limit": "5"}, 5, 5},
		{"Defaults", map[string]string{}, 0, 10},
		{"Malformed Page", map[string]string{"page": "abc", "limit": "3"}, 0, 3},
		{"Zero Page Clamped", map[string]string{"page": "0"}, 0, 10},
		{"Deep Page", map[string]string{"page": "4", "limit": "25"}, 75, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := New(tt.params).Paginate().Options()
			if opts.Skip == nil || *opts.Skip != tt.wantSkip {
				t.Errorf("skip = %v, want %d", opts.Skip, tt.wantSkip)
			}
			if opts.Limit == nil || *opts.Limit != tt.wantLimit {
				t.Errorf("limit = %v, want %d", opts.Limit, tt.wantLimit)
			}
		})
	}
}

func TestChainComposesAllStages(t *testing.T) {
	f := New(map[string]string{
		"difficulty": "easy",
		"price[lte]": "1200",
		"sort":       "-price",
		"fields":     "name,price,difficulty",
		"page":       "1",
		"limit":      "2",
	}).Filter().Sort().LimitFields().Paginate()

	wantFilter := bson.M{"difficulty": "easy", "price": bson.M{"$lte": 1200.0}}
	if !reflect.DeepEqual(f.Conditions(), wantFilter) {
		t.Errorf("conditions = %v, want %v", f.Conditions(), wantFilter)
	}
	opts := f.Options()
	if opts.Limit == nil || *opts.Limit != 2 {
		t.Errorf("limit = %v, want 2", opts.Limit)
	}
	if opts.Skip == nil || *opts.Skip != 0 {
		t.Errorf("skip = %v, want 0", opts.Skip)
	}
}
