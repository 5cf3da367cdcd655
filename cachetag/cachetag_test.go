package cachetag_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/gql2sql/cachetag"
)

func TestExtractLaunchRocketScenario(t *testing.T) {
	value := map[string]any{
		"data": map[string]any{
			"launchesPast": []any{
				map[string]any{
					"__typename":      "Launch",
					"id":              "109",
					"mission_name":    "Starlink-15 (v1.0)",
					"launch_date_utc": "2020-10-24T15:31:00.000Z",
					"rocket": map[string]any{
						"__typename": "LaunchRocket",
						"rocket": map[string]any{
							"__typename": "Rocket",
							"id":         "falcon9",
						},
					},
				},
				map[string]any{
					"__typename":      "Launch",
					"id":              "108",
					"mission_name":    "Sentinel-6 Michael Freilich",
					"launch_date_utc": "2020-11-21T17:17:00.000Z",
					"rocket": map[string]any{
						"__typename": "LaunchRocket",
						"rocket": map[string]any{
							"__typename": "Rocket",
							"id":         "falcon9",
						},
					},
				},
			},
		},
	}

	tags := map[string]struct{}{}
	cachetag.Extract(value, tags)

	assert.Len(t, tags, 4)
	for _, want := range []string{"type:Launch:id:109", "type:Launch:id:108", "type:LaunchRocket", "type:Rocket:id:falcon9"} {
		_, ok := tags[want]
		assert.True(t, ok, "missing tag %s", want)
	}
}

func TestExtractObjectWithoutTypenameRecursesOnly(t *testing.T) {
	value := map[string]any{
		"wrapper": map[string]any{
			"__typename": "Thing",
			"id":         "1",
		},
	}
	tags := map[string]struct{}{}
	cachetag.Extract(value, tags)
	assert.Equal(t, map[string]struct{}{"type:Thing:id:1": {}}, tags)
}

func TestExtractUntaggedObjectEmitsTypeLevelTag(t *testing.T) {
	value := map[string]any{
		"__typename": "Settings",
		"name":       "dark-mode",
	}
	tags := map[string]struct{}{}
	cachetag.Extract(value, tags)
	assert.Equal(t, map[string]struct{}{"type:Settings": {}}, tags)
}

func TestExtractNonStringIdFallsThroughToRecursion(t *testing.T) {
	value := map[string]any{
		"__typename": "Counter",
		"id":         42,
	}
	tags := map[string]struct{}{}
	cachetag.Extract(value, tags)
	assert.Equal(t, map[string]struct{}{"type:Counter": {}}, tags)
}

func TestExtractScalarsAreNoop(t *testing.T) {
	tags := map[string]struct{}{}
	cachetag.Extract("just a string", tags)
	cachetag.Extract(42, tags)
	cachetag.Extract(nil, tags)
	assert.Empty(t, tags)
}
