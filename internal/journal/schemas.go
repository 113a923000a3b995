package journal

import (
	"encoding/json"

	"google.golang.org/genai"
)

// Response schemas for the structured-output calls. They travel as raw JSON
// inside the payload's generationConfig; the gateway's adapter decodes them
// back into SDK schema values.

var feedbackSchema = mustSchema(&genai.Schema{
	Description: "Feedback structure",
	Type:        genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"morningComment":       {Type: genai.TypeString},
		"eveningComment":       {Type: genai.TypeString},
		"dailySummary":         {Type: genai.TypeString},
		"reflectionOnFollowUp": {Type: genai.TypeString},
		"oneMinuteAction":      {Type: genai.TypeString},
		"dailyTitle":           {Type: genai.TypeString},
	},
	Required: []string{"morningComment", "eveningComment", "dailySummary", "reflectionOnFollowUp", "oneMinuteAction", "dailyTitle"},
})

var eveningEntrySchema = mustSchema(&genai.Schema{
	Description: "Extracted diary entry from chat",
	Type:        genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"goodThings":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
		"kindness":         {Type: genai.TypeString},
		"insights":         {Type: genai.TypeString},
		"followUpQuestion": {Type: genai.TypeString},
	},
	Required: []string{"goodThings", "kindness", "insights", "followUpQuestion"},
})

var parallelWorldSchema = mustSchema(&genai.Schema{
	Description: "Parallel World Story",
	Type:        genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"story":            {Type: genai.TypeString, Description: "もし別の選択をしていたら...というIFストーリー"},
		"divergencePoint":  {Type: genai.TypeString, Description: "運命が分岐した瞬間"},
		"worldDescription": {Type: genai.TypeString, Description: "その並行世界の設定や雰囲気"},
	},
	Required: []string{"story", "divergencePoint", "worldDescription"},
})

func mustSchema(s *genai.Schema) json.RawMessage {
	data, err := json.Marshal(s)
	if err != nil {
		panic(err)
	}
	return data
}
