package report

import "testing"

func TestInferDepartment(t *testing.T) {
	cases := []struct {
		name          string
		department    string
		patientRights string
		expected      string
	}{
		{
			name:       "explicit department wins over any rights text",
			department: "คลินิกพิเศษ",
			// Rights text that would otherwise match the NHSO rule.
			patientRights: "สปสช. เขต 11",
			expected:      "คลินิกพิเศษ",
		},
		{
			name:          "nhso keyword",
			patientRights: "สิทธิ สปสช. บัตรทอง",
			expected:      DepartmentNHSO,
		},
		{
			name:          "social security maps to nhso label",
			patientRights: "ประกันสังคม มาตรา 33",
			expected:      DepartmentNHSO,
		},
		{
			name:          "cash payer",
			patientRights: "เงินสด",
			expected:      DepartmentProInterLab,
		},
		{
			name:          "self pay phrasing",
			patientRights: "ผู้ป่วยชำระเงินเอง",
			expected:      DepartmentProInterLab,
		},
		{
			name:          "self pay alternate phrasing",
			patientRights: "จ่ายเอง",
			expected:      DepartmentProInterLab,
		},
		{
			name:          "civil servant shares the self pay label",
			patientRights: "ข้าราชการ กรมบัญชีกลาง",
			expected:      DepartmentProInterLab,
		},
		{
			name:          "nhso rule outranks self pay on mixed text",
			patientRights: "ประกันสังคม ชำระเงินเอง",
			expected:      DepartmentNHSO,
		},
		{
			name:          "unmatched text falls through to default",
			patientRights: "ประกันชีวิตเอกชน",
			expected:      DepartmentChaiyaRuam,
		},
		{
			name:     "empty rights falls through to default",
			expected: DepartmentChaiyaRuam,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := InferDepartment(tc.department, tc.patientRights)
			if got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
			// Pure function: same inputs, same label.
			if again := InferDepartment(tc.department, tc.patientRights); again != got {
				t.Fatalf("inference is not deterministic: %q then %q", got, again)
			}
		})
	}
}
