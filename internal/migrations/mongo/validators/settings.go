package validators

import "go.mongodb.org/mongo-driver/bson"

var AvailabilitySettingsValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"provider_id",
			"city",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"provider_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"city": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"slot_duration_min": bson.M{
				"bsonType": "int",
				"minimum":  5,
				"maximum":  240,
			},

			"max_advance_booking_days": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  365,
			},

			"min_advance_booking_hours": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  168,
			},

			"women_only_hours_enabled": bson.M{
				"bsonType": "bool",
			},

			"women_only_start": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{2}:\d{2}$`,
			},

			"women_only_end": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{2}:\d{2}$`,
			},
		},
	},
}
