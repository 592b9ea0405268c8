package models

// All lists every model migrated by config.ConnectDB.
func All() []interface{} {
	return []interface{}{
		&Participant{},
		&Survey{},
		&SurveySlug{},
		&Section{},
		&Question{},
		&Entry{},
		&Answer{},
		&ExportJob{},
	}
}
