package model

// All AutoMigrate 대상 모델 목록
func All() []interface{} {
	return []interface{}{
		&UserModel{},
		&AuditLogModel{},
		&LoginAttemptModel{},
		&UserBehaviorBaselineModel{},
		&AnomalyRecordModel{},
		&OtpSessionModel{},
		&UserSessionModel{},
	}
}
