// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package template

import "github.com/pdiddy/paper-analyzer/pkg/types"

var basicTemplate = &Template{
	Type: types.BasicResearch,
	Fields: []Field{
		{
			Name: "scientific_question", Label: "Scientific Question", MaxLen: 400,
			Rules: []Rule{
				rule(`(?:background|introduction)[:\s]*(.*?)(?:\n\n|\. [A-Z]|\. methods|\. objective)`),
				rule(`(?:scientific question|research question)[:\s]*(.*?)(?:\n\n|\. [A-Z])`),
				rule(`科学问题[:\s]*(.*?)(?:\n\n|研究方法)`),
				rule(`(?:we sought to|we aimed to|the purpose was) (.*?)(?:\.|,|\n)`),
				rule(`(?:however|然而|但是) (.*?)(?:\.|,|\n)`),
				rule(`研究.*?(?:目的|意义|价值) (.*?)(?:\.|,|\n)`),

				// Research gaps.
				rule(`((?:however|然而) .*?(?:remains|仍需|仍待) .*?)(?:\.|,|\n)`),
				rule(`((?:gaps|空白) (?:in|存在) .*?)(?:\.|,|\n)`),
			},
			Default: "Scientific question not clearly stated",
		},
		{
			Name: "research_method", Label: "Research Method", MaxLen: 500,
			Rules: []Rule{
				rule(`methods[:\s]*(.*?)(?:\n\n|\. [A-Z]|\. results|\. conclusion)`),
				rule(`methodology[:\s]*(.*?)(?:\n\n|\. [A-Z]|\. results)`),
				rule(`研究方法[:\s]*(.*?)(?:\n\n|results)`),
				rule(`(?:we (?:used|performed|conducted|measured)) (.*?)(?:\.|,|\n)`),
				rule(`(?:cell culture|western blot|qpcr|mice|rat) (.*?)(?:\.|,|\n)`),
				rule(`(?:实验方法|实验设计)[:\s]*(.*?)(?:\n\n|结果)`),
			},
			Default: "Methods not clearly stated",
		},
		{
			Name: "results", Label: "Results", MaxLen: 600,
			Rules: []Rule{
				rule(`results[:\s]*(.*?)(?:\n\n|\. [A-Z]|\. conclusion|\. discussion)`),
				rule(`results[:\s]*(.*?)(?:\n\n|conclusion)`),
				rule(`(?:we found|results show|showed|found that) (.*?)(?:\.|,|\n)`),
				rule(`(?:significant|increased|decreased|enhanced|reduced) (.*?)(?:\.|,|\n)`),
				rule(`(?:expression|levels|activity) (?:of|were) (.*?)(?:\.|,|\n)`),
				rule(`(p\s*[<=>]\s*0\.\d+.*?)(?:\.|,|\n)`),
			},
			Default: "Results not clearly stated",
		},
		{
			Name: "conclusion", Label: "Conclusion", MaxLen: 500,
			Rules: []Rule{
				rule(`conclusion[:\s]*(.*?)(?:\n\n|\. [A-Z]|\. discussion|$)`),
				rule(`discussion[:\s]*(.*?)(?:\n\n|\. [A-Z]|$)`),
				rule(`conclusion[:\s]*(.*?)(?:\n\n|$)`),
				rule(`(?:in conclusion|these findings|demonstrate that|indicates that) (.*?)(?:\.|,|\n|$)`),
				rule(`(?:consequently|therefore|thus) (.*?)(?:\.|,|\n|$)`),
			},
			Default: "Conclusion not clearly stated",
		},
		{
			Name: "mechanism", Label: "Mechanism", MaxLen: 500,
			Rules: []Rule{
				rule(`mechanism[:\s]*(.*?)(?:\n\n|\. [A-Z]|\. conclusion|$)`),
				rule(`(?:mechanism of action|pathway|signaling)[:\s]*(.*?)(?:\n\n|\. [A-Z])`),
				rule(`作用机制[:\s]*(.*?)(?:\n\n|conclusion)`),
				rule(`(?:through|via|by) (.*?)(?:pathway|mechanism|process) (.*?)(?:\.|,|\n)`),
				rule(`(?:regulates|activates|inhibits|mediates) (.*?)(?:\.|,|\n)`),
				rule(`(?:分子机制|信号通路|调控机制)[:\s]*(.*?)(?:\n\n|结论)`),

				// Molecular interactions.
				rule(`((?:interaction|相互作用|结合) (?:between|之间) .*?)(?:\.|,|\n)`),
				rule(`((?:up[- ]?regulation|down[- ]?regulation|上调|下调) .*?)(?:\.|,|\n)`),
			},
			Default: "Mechanism not clearly stated",
		},
	},
}
