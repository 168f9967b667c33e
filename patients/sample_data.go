package patients

// Seed data for the demo deployment. Every entry mirrors what a real
// clinical source would return, with medication labels chosen so the
// label-database lookups resolve.

func defaultHistory() []HistoryEntry {
	return []HistoryEntry{
		{
			Type:  "diagnostic",
			Label: "Annual physical",
			Date:  "Jan 2025",
			Items: []string{
				"Routine exam, vitals WNL",
				"CBC and metabolic panel ordered",
				"Patient advised to continue diet and exercise",
			},
		},
		{
			Type:  "diagnostic",
			Label: "Hypertension follow-up",
			Date:  "Nov 2024",
			Items: []string{
				"BP 132/82 on current regimen",
				"Lisinopril dose maintained",
				"Next check in 3 months",
			},
		},
		{
			Type:  "diagnostic",
			Label: "Lab results",
			Date:  "Oct 2024",
			Items: []string{
				"HbA1c 5.8% (prediabetic range)",
				"LDL 118 mg/dL",
				"TSH 2.1 mIU/L",
			},
		},
		{
			Type:  "diagnostic",
			Label: "Cardiology consult",
			Date:  "Aug 2024",
			Items: []string{
				"Echo showed mild LVH, EF 58%",
				"Stress test negative for ischemia",
				"Continue current cardiac meds",
			},
		},
	}
}

func defaultMedications() []Medication {
	return []Medication{
		{
			Type:      "diagnostic",
			Label:     "Lisinopril",
			Conflicts: []string{},
			Items:     []string{"10 mg once daily", "For hypertension"},
		},
		{
			Type:      "diagnostic",
			Label:     "Atorvastatin",
			Conflicts: []string{},
			Items:     []string{"20 mg once daily at bedtime", "For LDL cholesterol"},
		},
		{
			Type:      "diagnostic",
			Label:     "Aspirin",
			Conflicts: []string{},
			Items:     []string{"81 mg once daily", "Cardioprotective"},
		},
	}
}

func defaultFamilyHistory() []FamilyHistoryEntry {
	return []FamilyHistoryEntry{
		{
			Type:       "diagnostic",
			Label:      "Oscar Wilde",
			Relation:   "Father",
			Conditions: []string{"Heart disease", "Cancer", "plague"},
		},
	}
}

func sampleRecords() map[string]Record {
	return map[string]Record{
		"BIO-20231205": {
			Patient: Patient{
				Name:       "John Doe",
				PatientID:  "BIO-20231205",
				PatientDOB: "May 21, 1989",
			},
			History:       defaultHistory(),
			Medications:   defaultMedications(),
			FamilyHistory: defaultFamilyHistory(),
		},
		"BIO-20240308": {
			Patient: Patient{
				Name:       "Emily Watson",
				PatientID:  "BIO-20240308",
				PatientDOB: "May 21, 1989",
			},
			History:       defaultHistory(),
			Medications:   defaultMedications(),
			FamilyHistory: defaultFamilyHistory(),
		},
		"BIO-20240521": {
			Patient: Patient{
				Name:       "John Johnson",
				PatientID:  "BIO-20240521",
				PatientDOB: "May 21, 1989",
			},
			History:       defaultHistory(),
			Medications:   defaultMedications(),
			FamilyHistory: defaultFamilyHistory(),
		},
	}
}
