package blackout

import "github.com/m04kA/SMC-ExamBookingService/pkg/dbmetrics"

type DBExecutor = dbmetrics.DBExecutor
