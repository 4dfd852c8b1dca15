package config

type WorkerKeyStruct struct {
	EligibilityAuditQueue string
}

var WorkerKey = &WorkerKeyStruct{
	EligibilityAuditQueue: "eligibility_audit_queue",
}
