package utils

import (
	"reflect"
	"strings"

	"github.com/Project-Stage-Academy/UA-13XX-bravo/internal/entity"
	"github.com/shopspring/decimal"
)

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// ChangedFields compares two snapshots of a company profile and returns the
// json names of the fields that differ. Bookkeeping fields are skipped.
func ChangedFields(oldCompany, newCompany entity.Company) []string {
	oldValue := reflect.ValueOf(oldCompany)
	newValue := reflect.ValueOf(newCompany)

	var changed []string
	for i := 0; i < oldValue.NumField(); i++ {
		field := oldValue.Type().Field(i)
		if contains([]string{"Model", "Members", "RaisedAmount"}, field.Name) {
			continue
		}

		oldFieldValue := oldValue.Field(i).Interface()
		newFieldValue := newValue.Field(i).Interface()

		if field.Type == decimalType {
			if !oldFieldValue.(decimal.Decimal).Equal(newFieldValue.(decimal.Decimal)) {
				changed = append(changed, jsonName(field))
			}
			continue
		}

		if !reflect.DeepEqual(oldFieldValue, newFieldValue) {
			changed = append(changed, jsonName(field))
		}
	}
	return changed
}

func jsonName(field reflect.StructField) string {
	tag := field.Tag.Get("json")
	if name, _, _ := strings.Cut(tag, ","); name != "" && name != "-" {
		return name
	}
	return field.Name
}
