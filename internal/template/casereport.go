// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package template

import "github.com/pdiddy/paper-analyzer/pkg/types"

// patientInfoLen caps spans kept by the patient basic-info fallbacks.
const patientInfoLen = 300

var caseTemplate = &Template{
	Type: types.CaseReport,
	Fields: []Field{
		{
			Name: "case_summary", Label: "Case Summary", MaxLen: 500,
			Rules: []Rule{
				rule(`case report[:\s]*(.*?)(?:\n\n|\. [A-Z]|\. clinical)`),
				rule(`case presentation[:\s]*(.*?)(?:\n\n|\. [A-Z]|\. diagnosis)`),
				rule(`病例概述[:\s]*(.*?)(?:\n\n|临床表现)`),
				rule(`(?:we report|this case) (.*?)(?:\.|,|\n)`),
				rule(`a (?:[0-9]+-year-old|患者) (.*?)(?:\.|,|\n)`),

				// Patient basic info: age, sex and similar.
				cappedRule(`([0-9]+-year-old (?:male|female|man|woman).*?)(?:\.|,|\n)`, patientInfoLen),
				cappedRule(`(患者.*?年.*?岁.*?)(?:\.|,|\n)`, patientInfoLen),
				cappedRule(`(a [0-9]+ year old .*?)(?:\.|,|\n)`, patientInfoLen),
			},
			Default: "Case summary not clearly stated",
		},
		{
			Name: "clinical_presentation", Label: "Clinical Presentation", MaxLen: 500,
			Rules: []Rule{
				rule(`clinical presentation[:\s]*(.*?)(?:\n\n|\. [A-Z]|\. diagnosis|\. treatment)`),
				rule(`presentation[:\s]*(.*?)(?:\n\n|\. [A-Z]|\. diagnosis)`),
				rule(`临床表现[:\s]*(.*?)(?:\n\n|诊断过程)`),
				rule(`(?:presented with|complained of|chief complaint) (.*?)(?:\.|,|\n)`),
				rule(`(?:主诉|现病史|症状)[:\s]*(.*?)(?:\n\n|诊断)`),
			},
			Default: "Clinical presentation not clearly stated",
		},
		{
			Name: "diagnosis", Label: "Diagnosis", MaxLen: 500,
			Rules: []Rule{
				rule(`diagnosis[:\s]*(.*?)(?:\n\n|\. [A-Z]|\. treatment|\. outcome)`),
				rule(`diagnostic[:\s]*(.*?)(?:\n\n|\. [A-Z]|\. treatment)`),
				rule(`诊断过程[:\s]*(.*?)(?:\n\n|治疗方案)`),
				rule(`(?:diagnosed with|diagnosis was|confirmed by) (.*?)(?:\.|,|\n)`),
				rule(`(?:检查结果|实验室检查|影像学)[:\s]*(.*?)(?:\n\n|治疗)`),
			},
			Default: "Diagnosis not clearly stated",
		},
		{
			Name: "treatment", Label: "Treatment", MaxLen: 500,
			Rules: []Rule{
				rule(`treatment[:\s]*(.*?)(?:\n\n|\. [A-Z]|\. outcome|\. follow-up)`),
				rule(`management[:\s]*(.*?)(?:\n\n|\. [A-Z]|\. outcome)`),
				rule(`治疗方案[:\s]*(.*?)(?:\n\n|治疗结果)`),
				rule(`(?:treated with|management included|therapy consisted of) (.*?)(?:\.|,|\n)`),
				rule(`(?:治疗|用药|手术)[:\s]*(.*?)(?:\n\n|结果)`),
			},
			Default: "Treatment not clearly stated",
		},
		{
			Name: "outcome", Label: "Outcome", MaxLen: 500,
			Rules: []Rule{
				rule(`outcome[:\s]*(.*?)(?:\n\n|\. [A-Z]|$)`),
				rule(`follow[- ]?up[:\s]*(.*?)(?:\n\n|\. [A-Z]|$)`),
				rule(`治疗结果[:\s]*(.*?)(?:\n\n|$)`),
				rule(`(?:outcome was|patient (?:recovered|improved|deteriorated)) (.*?)(?:\.|,|\n)`),
				rule(`(?:结果|预后|随访)[:\s]*(.*?)(?:\n\n|$)`),
			},
			Default: "Outcome not clearly stated",
		},
	},
}
