package models

// Category groups expenses. Expenses reference it by name, not by id.
type Category struct {
	ID   string
	Name string
}

// ToRecord serializes the category to its JSON-native form.
func (c Category) ToRecord() Record {
	return Record{
		FieldID:   c.ID,
		FieldName: c.Name,
	}
}

// CategoryFromRecord hydrates a Category from its JSON-native form.
func CategoryFromRecord(r Record) (Category, error) {
	id, err := requiredString(r, FieldID)
	if err != nil {
		return Category{}, err
	}
	name, err := requiredString(r, FieldName)
	if err != nil {
		return Category{}, err
	}
	return Category{ID: id, Name: name}, nil
}
