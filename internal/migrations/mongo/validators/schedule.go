package validators

import "go.mongodb.org/mongo-driver/bson"

var WorkingScheduleValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"provider_id",
			"is_active",
			"priority",
			"recurrence",
			"shifts",
			"created_at",
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

			"name": bson.M{
				"bsonType":  "string",
				"maxLength": 100,
			},

			"is_active": bson.M{
				"bsonType": "bool",
			},

			"priority": bson.M{
				"bsonType": "int",
				"minimum":  0,
				"maximum":  100,
			},

			"effective_from": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"effective_to": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"recurrence": bson.M{
				"bsonType": "string",
				"enum":     []string{"none", "yearly", "ramadan"},
			},

			"shifts": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"day_of_week", "start_time", "end_time"},
					"properties": bson.M{
						"day_of_week": bson.M{
							"bsonType": "int",
							"minimum":  0,
							"maximum":  6,
						},
						"start_time": bson.M{
							"bsonType": "string",
							"pattern":  `^\d{2}:\d{2}$`,
						},
						"end_time": bson.M{
							"bsonType": "string",
							"pattern":  `^\d{2}:\d{2}$`,
						},
					},
				},
			},

			"breaks": bson.M{
				"bsonType": "array",
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"day_of_week", "kind"},
					"properties": bson.M{
						"kind": bson.M{
							"bsonType": "string",
							"enum":     []string{"static", "dynamic"},
						},
						"prayer": bson.M{
							"bsonType": "string",
							"enum":     []string{"fajr", "dhuhr", "asr", "maghrib", "isha"},
						},
					},
				},
			},

			"created_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
