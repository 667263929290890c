// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package template

import "github.com/pdiddy/paper-analyzer/pkg/types"

// backgroundLead is how much raw text stands in for a missing background.
const backgroundLead = 200

var clinicalTemplate = &Template{
	Type: types.ClinicalResearch,
	Fields: []Field{
		{
			Name: "background", Label: "Background", MaxLen: 500,
			Rules: []Rule{
				rule(`background[:\s]*(.*?)(?:\n\n|\. [A-Z]|\.objective|\. methods)`),
				rule(`introduction[:\s]*(.*?)(?:\n\n|\. [A-Z]|\.objective)`),
				rule(`background[:\s]*(.*?)(?:\n\n|objective)`),
			},
			Lead:    backgroundLead,
			Default: "Background not clearly stated",
		},
		{
			Name: "objective", Label: "Objective", MaxLen: 300,
			Rules: []Rule{
				rule(`objective[:\s]*(.*?)(?:\n\n|\. [A-Z]|\. methods|\.participants)`),
				rule(`aim[:\s]*(.*?)(?:\n\n|\. [A-Z])`),
				rule(`objective[:\s]*(.*?)(?:\n\n|methods)`),
				rule(`to (?:investigate|evaluate|assess|determine) (.*?)(?:\.|,|\n)`),
			},
			Default: "Objective not clearly stated",
		},
		{
			Name: "methods", Label: "Methods", MaxLen: 500,
			Rules: []Rule{
				rule(`methods[:\s]*(.*?)(?:\n\n|\. [A-Z]|\.participants|\. intervention)`),
				rule(`methodology[:\s]*(.*?)(?:\n\n|\. [A-Z])`),
				rule(`研究方法[:\s]*(.*?)(?:\n\n|participants)`),
				rule(`(?:we conducted|this was) (.*?)(?:study|trial)(?:\.|,|\n)`),
			},
			Default: "Methods not clearly stated",
		},
		{
			Name: "participants", Label: "Participants", MaxLen: 400,
			Rules: []Rule{
				rule(`(participants[:\s]*.*?)(?:\n\n|\. [A-Z]|\. intervention|\. outcomes)`),
				rule(`(study population[:\s]*.*?)(?:\n\n|\. [A-Z])`),
				rule(`(participants[:\s]*.*?)(?:\n\n|intervention)`),
				rule(`((?:patients|participants) (?:with|aged|n =) .*?)(?:\.|,|\n)`),
				rule(`(\d+ patients? .*?)(?:\.|,|\n)`),
			},
			Default: "Participants information not clearly stated",
		},
		{
			Name: "intervention", Label: "Intervention", MaxLen: 400,
			Rules: []Rule{
				rule(`intervention[:\s]*(.*?)(?:\n\n|\. [A-Z]|\. outcomes|\. results)`),
				rule(`treatment[:\s]*(.*?)(?:\n\n|\. [A-Z]|\. outcomes)`),
				rule(`intervention[:\s]*(.*?)(?:\n\n|outcomes)`),
				rule(`(?:treatment|intervention) (?:with|using|consisted of) (.*?)(?:\.|,|\n)`),
			},
			Default: "Intervention not clearly stated",
		},
		{
			Name: "outcomes", Label: "Outcomes", MaxLen: 400,
			Rules: []Rule{
				rule(`outcomes[:\s]*(.*?)(?:\n\n|\. [A-Z]|\. results|\. conclusion)`),
				rule(`primary outcome[:\s]*(.*?)(?:\n\n|\. [A-Z])`),
				rule(`outcomes[:\s]*(.*?)(?:\n\n|results)`),
				rule(`(?:primary|main) (?:outcome|endpoint) (?:was|were) (.*?)(?:\.|,|\n)`),
			},
			Default: "Outcomes not clearly stated",
		},
		{
			Name: "results", Label: "Results", MaxLen: 600,
			Rules: []Rule{
				rule(`results[:\s]*(.*?)(?:\n\n|\. [A-Z]|\. conclusion|\. interpretation)`),
				rule(`results[:\s]*(.*?)(?:\n\n|结论)`),
				rule(`(?:we found|results show|showed) (.*?)(?:\.|,|\n)`),
				rule(`(p\s*[<=>]\s*0\.\d+.*?)(?:\.|,|\n)`),
			},
			Default: "Results not clearly stated",
		},
		{
			Name: "conclusion", Label: "Conclusion", MaxLen: 400,
			Rules: []Rule{
				rule(`conclusion[:\s]*(.*?)(?:\n\n|\. [A-Z]|\. interpretation|$)`),
				rule(`interpretation[:\s]*(.*?)(?:\n\n|\. [A-Z]|$)`),
				rule(`结论[:\s]*(.*?)(?:\n\n|$)`),
				rule(`(?:in conclusion|these findings) (.*?)(?:\.|,|\n|$)`),
			},
			Default: "Conclusion not clearly stated",
		},
	},
}
