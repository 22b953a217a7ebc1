package types

// Shared enumerations for the whole application. Every list the UI shows and
// the server validates against lives here, nowhere else.

const (
	RoleUser                 = "USER"
	RoleAdmin                = "ADMIN"
	RoleIdareci              = "IDARECI"
	RoleOgretmen             = "OGRETMEN"
	RoleTubitakOkulYetkilisi = "TUBITAK_OKUL_YETKILISI"
	RoleOgrenci              = "OGRENCI"
)

var Roles = []string{
	RoleUser,
	RoleAdmin,
	RoleIdareci,
	RoleOgretmen,
	RoleTubitakOkulYetkilisi,
	RoleOgrenci,
}

// SelfServiceRoles are the roles a visitor may pick at registration.
// ADMIN and TUBITAK_OKUL_YETKILISI accounts are assigned by an admin.
var SelfServiceRoles = []string{RoleIdareci, RoleOgretmen, RoleOgrenci}

const (
	SubTypeA = "4006-A"
	SubTypeB = "4006-B"
)

var SubTypeLabels = map[string]string{
	SubTypeA: "TÜBİTAK 4006-A",
	SubTypeB: "TÜBİTAK 4006-B",
}

var MainAreas = []string{
	"Fizik",
	"Kimya",
	"Biyoloji",
	"Matematik",
	"Coğrafya",
	"Tarih",
	"Türkçe",
	"Yabancı Dil",
	"Bilişim Teknolojileri",
	"Teknoloji ve Tasarım",
	"Görsel Sanatlar",
	"Müzik",
}

// ProjectTypesBySubType holds the allowed project types per sub type.
// "İnceleme" is only offered on the 4006-A form.
var ProjectTypesBySubType = map[string][]string{
	SubTypeA: {"Araştırma", "Tasarım", "İnceleme"},
	SubTypeB: {"Araştırma", "Tasarım"},
}

const (
	TimelineStatusPending    = "pending"
	TimelineStatusInProgress = "in-progress"
	TimelineStatusCompleted  = "completed"
	TimelineStatusDelayed    = "delayed"
)

var TimelineStatuses = []string{
	TimelineStatusPending,
	TimelineStatusInProgress,
	TimelineStatusCompleted,
	TimelineStatusDelayed,
}

var AllowedFileTypes = []string{
	"application/pdf",
	"image/png",
	"image/jpeg",
}

// MaxFileSize is the upload cap in bytes (10 MiB).
const MaxFileSize = 10 * 1024 * 1024

func ValidRole(role string) bool {
	return contains(Roles, role)
}

func ValidSelfServiceRole(role string) bool {
	return contains(SelfServiceRoles, role)
}

func ValidSubType(subType string) bool {
	_, ok := ProjectTypesBySubType[subType]
	return ok
}

func ValidMainArea(area string) bool {
	return contains(MainAreas, area)
}

func ValidProjectType(subType, projectType string) bool {
	return contains(ProjectTypesBySubType[subType], projectType)
}

func ValidTimelineStatus(status string) bool {
	return contains(TimelineStatuses, status)
}

func ValidFileType(mimeType string) bool {
	return contains(AllowedFileTypes, mimeType)
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
