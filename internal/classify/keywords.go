// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import "github.com/pdiddy/paper-analyzer/pkg/types"

// Keyword tables per paper type. Each category lists its English phrases
// followed by their Chinese equivalents. A phrase listed twice is two
// matchers and scores twice, which weights the core terms of a category.

var clinicalKeywords = KeywordSet{
	newCategory("study_design", 3.0,
		"randomized controlled trial", "RCT", "cohort", "case-control",
		"cross-sectional", "prospective", "retrospective", "clinical trial",
		"randomized controlled trial", "cohort study", "case-control study", "cross-sectional study",
		"随机对照试验", "队列研究", "病例对照研究", "横断面研究",
	),
	newCategory("participants", 2.5,
		"patients", "participants", "subjects", "n =", "patients with",
		"patients", "subjects", "study subjects",
		"患者", "受试者", "研究对象",
	),
	newCategory("intervention", 2.5,
		"treatment", "intervention", "therapy", "drug", "medication",
		"surgery", "procedure", "treatment", "intervention", "drug", "surgery",
		"治疗", "干预", "药物", "手术",
	),
	newCategory("outcomes", 2.0,
		"outcome", "endpoint", "efficacy", "safety", "effectiveness",
		"outcome", "endpoint", "efficacy", "safety",
		"结局", "终点", "疗效", "安全性",
	),
	newCategory("statistics", 1.5,
		"p-value", "confidence interval", "odds ratio", "hazard ratio",
		"95% CI", "P <", "P =", "p<", "confidence interval", "odds ratio",
		"置信区间", "比值比",
	),
}

var caseKeywords = KeywordSet{
	newCategory("case_report", 3.0,
		"case report", "case presentation", "case study", "case report",
		"case study", "case report",
		"病例报告", "病例研究", "个案报告",
	),
	newCategory("patient_info", 2.5,
		"patient was", "patient presented with", "patient developed",
		"patient", "years old", "year old", "male", "female",
		"患者", "岁",
	),
	newCategory("clinical_features", 2.0,
		"presented with", "complained of", "diagnosed with",
		"presented with", "chief complaint", "diagnosis",
		"主诉", "表现为",
	),
	newCategory("diagnosis", 2.5,
		"diagnosis", "diagnosed", "confirmed by",
		"diagnosis", "diagnosed", "confirmed",
		"诊断", "确诊", "证实",
	),
	newCategory("treatment_outcome", 2.0,
		"treatment", "therapy", "outcome", "follow-up",
		"treatment", "efficacy", "outcome", "follow-up",
		"治疗", "疗效", "预后", "随访",
	),
}

var basicKeywords = KeywordSet{
	newCategory("methods", 2.5,
		"methodology", "experiment", "cell culture", "mice", "rats",
		"methods", "experiment", "cell culture", "mice", "rats",
		"实验方法", "实验", "细胞培养", "小鼠", "大鼠",
	),
	newCategory("molecular", 2.0,
		"gene", "protein", "expression", "pathway", "mechanism",
		"gene", "protein", "expression", "pathway", "mechanism",
		"基因", "蛋白", "表达", "通路", "机制",
	),
	newCategory("results_data", 1.5,
		"increased", "decreased", "significant", "data show",
		"increased", "decreased", "significant", "data show",
		"增加", "减少", "显著", "数据显示",
	),
	newCategory("biological", 2.0,
		"biological", "molecular", "cellular", "biochemical",
		"biological", "molecular", "cellular", "biochemical",
		"生物学", "分子", "细胞", "生化",
	),
}

// keywordTables pairs each paper type with its keyword set, in canonical order.
var keywordTables = []table{
	{types.ClinicalResearch, clinicalKeywords},
	{types.CaseReport, caseKeywords},
	{types.BasicResearch, basicKeywords},
}
