package core

// failureMessages is the user-facing text returned when the failure gate
// rejects an operation. Dashboards display it verbatim.
var failureMessages = map[string]string{
	"fetch_subsidiaries":            "계열사 정보를 불러오는 중 오류가 발생했습니다.",
	"fetch_company_total_emissions": "배출량 정보를 불러오는 중 오류가 발생했습니다.",
	"create_company":                "회사 생성 중 오류가 발생했습니다.",
	"update_company":                "회사 정보 수정 중 오류가 발생했습니다.",
	"delete_company":                "회사 삭제 중 오류가 발생했습니다.",

	"save_report":              "게시물 저장 중 오류가 발생했습니다.",
	"fetch_reports_by_company": "회사별 게시물 조회 중 오류가 발생했습니다.",
	"search_reports":           "게시물 검색 중 오류가 발생했습니다.",
	"fetch_recent_reports":     "최근 게시물 조회 중 오류가 발생했습니다.",
	"delete_report":            "게시물 삭제 중 오류가 발생했습니다.",
	"fetch_report":             "보고서를 불러오는 중 오류가 발생했습니다.",

	"fetch_notifications":         "알림을 불러오는 중 오류가 발생했습니다.",
	"mark_notification_read":      "알림 읽음 처리 중 오류가 발생했습니다.",
	"mark_all_notifications_read": "모든 알림 읽음 처리 중 오류가 발생했습니다.",
	"delete_notification":         "알림 삭제 중 오류가 발생했습니다.",
	"create_notification":         "알림 생성 중 오류가 발생했습니다.",

	"fetch_users":        "사용자 목록을 불러오는 중 오류가 발생했습니다.",
	"create_user":        "사용자 생성 중 오류가 발생했습니다.",
	"update_user":        "사용자 정보 수정 중 오류가 발생했습니다.",
	"delete_user":        "사용자 삭제 중 오류가 발생했습니다.",
	"toggle_user_status": "사용자 상태 변경 중 오류가 발생했습니다.",
	"search_users":       "사용자 검색 중 오류가 발생했습니다.",

	"fetch_countries_by_region":    "지역별 국가 조회 중 오류가 발생했습니다.",
	"search_countries":             "국가 검색 중 오류가 발생했습니다.",
	"fetch_top_emitting_countries": "상위 배출 국가 조회 중 오류가 발생했습니다.",
	"fetch_top_gdp_countries":      "상위 GDP 국가 조회 중 오류가 발생했습니다.",
	"fetch_country":                "국가 정보 조회 중 오류가 발생했습니다.",
	"fetch_available_regions":      "지역 목록 조회 중 오류가 발생했습니다.",
}
