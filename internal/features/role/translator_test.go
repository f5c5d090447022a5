package role

import (
	"testing"

	common_models "github.com/anhnq-lab/cic-erp-contract-sub002/internal/common/models"
)

func TestTranslateTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  common_models.Role
	}{
		{
			name:  "Chief Accountant Wins Over Accountant",
			title: "Kế toán trưởng",
			want:  common_models.RoleChiefAccountant,
		},
		{
			name:  "Plain Accountant",
			title: "Nhân viên kế toán",
			want:  common_models.RoleAccountant,
		},
		{
			name:  "Legal",
			title: "Chuyên viên pháp chế",
			want:  common_models.RoleLegal,
		},
		{
			name:  "Leadership From Director Title",
			title: "Phó Giám đốc",
			want:  common_models.RoleLeadership,
		},
		{
			name:  "Unit Leader",
			title: "Trưởng phòng kinh doanh",
			want:  common_models.RoleUnitLeader,
		},
		{
			name:  "Sales Default Keyword",
			title: "Nhân viên kinh doanh",
			want:  common_models.RoleNVKD,
		},
		{
			name:  "ASCII Fallback",
			title: "ke toan truong",
			want:  common_models.RoleChiefAccountant,
		},
		{
			name:  "Unknown Title Defaults To NVKD",
			title: "Thực tập sinh",
			want:  common_models.RoleNVKD,
		},
		{
			name:  "Empty Title Defaults To NVKD",
			title: "",
			want:  common_models.RoleNVKD,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TranslateTitle(tt.title); got != tt.want {
				t.Errorf("TranslateTitle(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestParseRole(t *testing.T) {
	if got := ParseRole("chief_accountant"); got != common_models.RoleChiefAccountant {
		t.Errorf("ParseRole(chief_accountant) = %v", got)
	}
	if got := ParseRole("superuser"); got != common_models.RoleNVKD {
		t.Errorf("ParseRole(superuser) = %v, want default NVKD", got)
	}
}
