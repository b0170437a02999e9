package report

import "strings"

// Clinic department labels. The inference rules below repair historically
// blank department fields from free-text payer-rights descriptions; report
// totals only match historical values if the rule table and fallback stay
// byte-for-byte identical.
const (
	DepartmentNHSO        = "สปสช."
	DepartmentProInterLab = "คลินิกเทคนิคการแพทย์ โปร อินเตอร์ แลบ ไชยา"
	DepartmentChaiyaRuam  = "คลินิกเวชกรรมไชยารวมแพทย์"
)

// InferDepartment returns the stored department when present, otherwise
// classifies the visit from its patient-rights text. First matching rule
// wins; substring matches are case-sensitive.
func InferDepartment(department string, patientRights string) string {
	if department != "" {
		return department
	}
	switch {
	case strings.Contains(patientRights, "สปสช"),
		strings.Contains(patientRights, "ประกันสังคม"):
		return DepartmentNHSO
	case strings.Contains(patientRights, "เงินสด"),
		strings.Contains(patientRights, "ชำระเงินเอง"),
		strings.Contains(patientRights, "จ่ายเอง"):
		return DepartmentProInterLab
	case strings.Contains(patientRights, "ข้าราชการ"):
		return DepartmentProInterLab
	default:
		return DepartmentChaiyaRuam
	}
}
