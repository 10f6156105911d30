package catalog

// Severity grades recorded against an abnormal finding.
const (
	SeverityMild     = "Mild"
	SeverityModerate = "Moderate"
	SeveritySevere   = "Severe"
)

// Severities lists the allowed severity grades in escalating order.
func Severities() []string {
	return []string{SeverityMild, SeverityModerate, SeveritySevere}
}

// Default returns the standard physical-examination catalog. The content is
// deployment configuration: clinics may load a variant, but the running
// process always treats it as immutable.
func Default() *Catalog {
	return New(defaultSystems)
}

var defaultSystems = []System{
	{
		Name:              "general",
		DisplayName:       "General Appearance",
		DisplayOrder:      1,
		DefaultNormalText: "Bright, alert and responsive. Body condition and hydration within normal limits.",
		Fields: []Field{
			{Name: "attitude", Label: "Attitude", Type: FieldSelect, Options: []string{"Bright and alert", "Quiet", "Depressed", "Obtunded"}},
			{Name: "body_condition_score", Label: "Body Condition Score", Type: FieldSelect, Options: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}},
			{Name: "hydration", Label: "Hydration", Type: FieldSelect, Options: []string{"Normal", "Mild dehydration", "Moderate dehydration", "Severe dehydration"}},
			{Name: "temperature", Label: "Temperature", Type: FieldNumeric, Unit: "°C"},
		},
	},
	{
		Name:              "skin",
		DisplayName:       "Skin & Coat",
		DisplayOrder:      2,
		DefaultNormalText: "Coat glossy and well groomed. Skin supple with no lesions, parasites or alopecia observed.",
		Fields: []Field{
			{Name: "lesions", Label: "Lesions Present", Type: FieldCheckbox},
			{Name: "pruritus", Label: "Pruritus", Type: FieldSelect, Options: []string{"Mild", "Moderate", "Severe"}},
			{Name: "alopecia", Label: "Alopecia", Type: FieldCheckbox},
			{Name: "parasites", Label: "Parasites", Type: FieldMultiSelect, Options: []string{"Fleas", "Ticks", "Mites", "Lice"}},
			{Name: "lesion_location", Label: "Lesion Location", Type: FieldText},
		},
	},
	{
		Name:              "musculoskeletal",
		DisplayName:       "Musculoskeletal",
		DisplayOrder:      3,
		DefaultNormalText: "Normal gait and posture. No lameness, joint effusion or muscle atrophy detected.",
		Fields: []Field{
			{Name: "gait", Label: "Gait", Type: FieldSelect, Options: []string{"Normal", "Stiff", "Ataxic", "Non-weight bearing"}},
			{Name: "lameness_grade", Label: "Lameness Grade", Type: FieldSelect, Options: []string{"1", "2", "3", "4", "5"}},
			{Name: "joint_swelling", Label: "Joint Swelling", Type: FieldCheckbox},
			{Name: "muscle_atrophy", Label: "Muscle Atrophy", Type: FieldCheckbox},
			{Name: "affected_limbs", Label: "Affected Limbs", Type: FieldMultiSelect, Options: []string{"Left fore", "Right fore", "Left hind", "Right hind"}},
		},
	},
	{
		Name:              "neurologic",
		DisplayName:       "Neurologic",
		DisplayOrder:      4,
		DefaultNormalText: "Appropriate mentation. Cranial nerves, postural reactions and spinal reflexes intact.",
		Fields: []Field{
			{Name: "mentation", Label: "Mentation", Type: FieldSelect, Options: []string{"Appropriate", "Dull", "Disoriented", "Stuporous", "Comatose"}},
			{Name: "cranial_nerve_deficits", Label: "Cranial Nerve Deficits", Type: FieldCheckbox},
			{Name: "proprioception", Label: "Proprioception", Type: FieldSelect, Options: []string{"Normal", "Delayed", "Absent"}},
			{Name: "seizure_activity", Label: "Seizure Activity Reported", Type: FieldCheckbox},
		},
	},
	{
		Name:              "eyes",
		DisplayName:       "Eyes",
		DisplayOrder:      5,
		DefaultNormalText: "Eyes clear and bright. No discharge, redness or corneal defects. Menace response present bilaterally.",
		Fields: []Field{
			{Name: "discharge", Label: "Ocular Discharge", Type: FieldSelect, Options: []string{"Serous", "Mucoid", "Purulent"}},
			{Name: "redness", Label: "Conjunctival Redness", Type: FieldCheckbox},
			{Name: "corneal_opacity", Label: "Corneal Opacity", Type: FieldCheckbox},
			{Name: "affected_eye", Label: "Affected Eye", Type: FieldSelect, Options: []string{"Left", "Right", "Both"}},
		},
	},
	{
		Name:              "ears",
		DisplayName:       "Ears",
		DisplayOrder:      6,
		DefaultNormalText: "Ear canals clean and odour free. Pinnae unremarkable, tympanic membranes intact.",
		Fields: []Field{
			{Name: "debris", Label: "Debris Present", Type: FieldCheckbox},
			{Name: "odor", Label: "Odour Present", Type: FieldCheckbox},
			{Name: "canal_inflammation", Label: "Canal Inflammation", Type: FieldSelect, Options: []string{"Mild", "Moderate", "Severe"}},
			{Name: "affected_ear", Label: "Affected Ear", Type: FieldSelect, Options: []string{"Left", "Right", "Both"}},
		},
	},
	{
		Name:              "oral",
		DisplayName:       "Oral Cavity",
		DisplayOrder:      7,
		DefaultNormalText: "Mucous membranes pink and moist, CRT under 2 seconds. Dentition appropriate for age.",
		Fields: []Field{
			{Name: "tartar_grade", Label: "Dental Tartar Grade", Type: FieldSelect, Options: []string{"1", "2", "3", "4"}},
			{Name: "gingivitis", Label: "Gingivitis", Type: FieldCheckbox},
			{Name: "fractured_teeth", Label: "Fractured Teeth", Type: FieldCheckbox},
			{Name: "mucous_membranes", Label: "Mucous Membranes", Type: FieldSelect, Options: []string{"Pink", "Pale", "Icteric", "Cyanotic", "Injected"}},
			{Name: "crt", Label: "Capillary Refill Time", Type: FieldNumeric, Unit: " sec"},
		},
	},
	{
		Name:              "cardiovascular",
		DisplayName:       "Cardiovascular",
		DisplayOrder:      8,
		DefaultNormalText: "Heart rate and rhythm regular. No murmur auscultated. Pulses strong and synchronous.",
		Fields: []Field{
			{Name: "heart_rate", Label: "Heart Rate", Type: FieldNumeric, Unit: " bpm"},
			{Name: "murmur", Label: "Murmur Auscultated", Type: FieldCheckbox},
			{Name: "murmur_grade", Label: "Murmur Grade", Type: FieldSelect, Options: []string{"I", "II", "III", "IV", "V", "VI"}},
			{Name: "rhythm", Label: "Rhythm", Type: FieldSelect, Options: []string{"Regular", "Sinus arrhythmia", "Irregular"}},
			{Name: "pulse_quality", Label: "Pulse Quality", Type: FieldSelect, Options: []string{"Strong", "Weak", "Bounding", "Absent"}},
		},
	},
	{
		Name:              "respiratory",
		DisplayName:       "Respiratory",
		DisplayOrder:      9,
		DefaultNormalText: "Normal respiratory rate and effort. Lung fields clear in all quadrants.",
		Fields: []Field{
			{Name: "respiratory_rate", Label: "Respiratory Rate", Type: FieldNumeric, Unit: " rpm"},
			{Name: "effort", Label: "Respiratory Effort", Type: FieldSelect, Options: []string{"Normal", "Increased", "Labored"}},
			{Name: "lung_sounds", Label: "Adventitious Lung Sounds", Type: FieldMultiSelect, Options: []string{"Crackles", "Wheezes", "Harsh", "Muffled"}},
			{Name: "cough", Label: "Cough Elicited", Type: FieldCheckbox},
			{Name: "nasal_discharge", Label: "Nasal Discharge", Type: FieldCheckbox},
		},
	},
	{
		Name:              "gastrointestinal",
		DisplayName:       "Gastrointestinal",
		DisplayOrder:      10,
		DefaultNormalText: "Abdomen soft and non-painful on palpation. No organomegaly or masses appreciated.",
		Fields: []Field{
			{Name: "palpation", Label: "Abdominal Palpation", Type: FieldSelect, Options: []string{"Soft", "Tense", "Painful", "Distended"}},
			{Name: "vomiting", Label: "Vomiting Reported", Type: FieldCheckbox},
			{Name: "diarrhea", Label: "Diarrhea Reported", Type: FieldCheckbox},
			{Name: "appetite", Label: "Appetite", Type: FieldSelect, Options: []string{"Normal", "Decreased", "Absent", "Increased"}},
		},
	},
	{
		Name:              "urogenital",
		DisplayName:       "Urogenital",
		DisplayOrder:      11,
		DefaultNormalText: "Urogenital examination unremarkable. Bladder small and soft, no discharge observed.",
		Fields: []Field{
			{Name: "urination", Label: "Urination", Type: FieldSelect, Options: []string{"Normal", "Stranguria", "Pollakiuria", "Hematuria"}},
			{Name: "discharge", Label: "Genital Discharge", Type: FieldCheckbox},
			{Name: "bladder_palpation", Label: "Bladder Palpation", Type: FieldSelect, Options: []string{"Small and soft", "Distended", "Firm", "Painful"}},
			{Name: "mammary_masses", Label: "Mammary Masses", Type: FieldCheckbox},
		},
	},
	{
		Name:              "lymph",
		DisplayName:       "Lymph Nodes",
		DisplayOrder:      12,
		DefaultNormalText: "Peripheral lymph nodes symmetrical and within normal size limits.",
		Fields: []Field{
			{Name: "enlarged_nodes", Label: "Enlarged Nodes", Type: FieldMultiSelect, Options: []string{"Submandibular", "Prescapular", "Axillary", "Inguinal", "Popliteal"}},
			{Name: "symmetry", Label: "Symmetry", Type: FieldSelect, Options: []string{"Symmetrical", "Asymmetrical"}},
		},
	},
	{
		Name:              "endocrine",
		DisplayName:       "Endocrine",
		DisplayOrder:      13,
		DefaultNormalText: "No clinical signs suggestive of endocrine disease noted.",
		Fields: []Field{
			{Name: "pu_pd", Label: "Polyuria/Polydipsia Reported", Type: FieldCheckbox},
			{Name: "weight_change", Label: "Weight Change", Type: FieldSelect, Options: []string{"Stable", "Gain", "Loss"}},
			{Name: "coat_changes", Label: "Endocrine Coat Changes", Type: FieldCheckbox},
		},
	},
}
