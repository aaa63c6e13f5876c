package dto

type UserItem struct {
	ID              string `json:"_id"`
	Email           string `json:"email"`
	Username        string `json:"username"`
	TasksAssigned   int    `json:"TasksAssigned"`
	TasksCompleted  int    `json:"TasksCompleted"`
	TasksInProgress int    `json:"TasksInProgress"`
	TasksNotStarted int    `json:"TasksNotStarted"`
	CreatedAt       string `json:"createdAt"`
}

type UserDetailItem struct {
	UserID      string  `json:"user"`
	PhoneNumber *string `json:"phoneNumber"`
	Role        string  `json:"role"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type SaveUserDetailRequest struct {
	PhoneNumber *string `json:"phoneNumber" binding:"omitempty,max=32"`
	Role        string  `json:"role"`
}

type EmailsResponse struct {
	Emails []string `json:"emails"`
}

type UserResponse struct {
	Success bool     `json:"success"`
	User    UserItem `json:"user"`
}

type UserDetailResponse struct {
	Success    bool           `json:"success"`
	Message    string         `json:"message"`
	User       *UserItem      `json:"user,omitempty"`
	UserDetail UserDetailItem `json:"userDetail"`
}

type AuthRequest struct {
	IDToken  string `json:"idToken" binding:"required"`
	Username string `json:"username" binding:"max=255"`
}

type AuthResponse struct {
	Success   bool     `json:"success"`
	Message   string   `json:"message"`
	Token     string   `json:"token"`
	ExpiresAt string   `json:"expiresAt"`
	User      UserItem `json:"user"`
}
