package shared

import (
	"reflect"
	"strings"

	"todoapp/shared/constant"
	"todoapp/shared/dto"
	"todoapp/shared/timezone"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const cacheKeySeparator = ":"

// TransformFields converts the set fields of a request struct into a $set
// document keyed by bson tag. Nil pointers and zero values are skipped, and
// updatedAt is always refreshed.
func TransformFields(data any) map[string]any {
	val := reflect.ValueOf(data)
	typ := reflect.TypeOf(data)

	updatedFields := make(map[string]any)

	for index := range val.NumField() {
		field := val.Field(index)
		if field.IsZero() {
			continue
		}

		fieldName := strings.SplitN(typ.Field(index).Tag.Get("bson"), ",", 2)[0]
		if fieldName == "" || fieldName == "-" {
			continue
		}

		if field.Kind() == reflect.Pointer {
			field = field.Elem()
		}

		updatedFields[fieldName] = field.Interface()
	}

	updatedFields[constant.FieldUpdatedAt] = timezone.Now()

	return updatedFields
}

func FilterByID(id bson.ObjectID) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    constant.FieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
			},
		},
	}
}

func FilterByField(field string, value any) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    field,
				Value:    value,
				Operator: dto.FilterOperatorEq,
			},
		},
	}
}

// BuildCacheKey joins the non-empty parts into a colon separated key.
func BuildCacheKey(parts ...string) string {
	keys := make([]string, 0, len(parts))

	for _, part := range parts {
		if part == constant.Empty {
			continue
		}

		keys = append(keys, part)
	}

	return strings.Join(keys, cacheKeySeparator)
}
