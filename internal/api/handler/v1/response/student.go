package response

type PointsAwardedResponse struct {
	Message        string `json:"message"`
	StudentID      string `json:"student_id"`
	PointsAwarded  int    `json:"points_awarded"`
	TotalPoints    int    `json:"total_points"`
	TasksCompleted int    `json:"tasks_completed"`
}

type ArchiveSeasonResponse struct {
	Message  string `json:"message"`
	Students int    `json:"students"`
}
