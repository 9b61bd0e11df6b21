package model

// TestData is the fixed payload served by GET /api/test-data. It exists so a
// freshly deployed instance can be verified with a single request.
type TestData struct {
	Message string          `json:"message"`
	Status  string          `json:"status"`
	Data    TestDataDetails `json:"data"`
}

// TestDataDetails is the nested object inside the test payload.
type TestDataDetails struct {
	User         string   `json:"user"`
	Role         string   `json:"role"`
	Technologies []string `json:"technologies"`
	Project      string   `json:"project"`
}
