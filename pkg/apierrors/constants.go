package apierrors

const (
	MsgInvalidTaskID      = "invalidTaskID"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgInvalidFrequency   = "invalidFrequency"
	MsgTaskNotFound       = "taskNotFound"
	MsgAssigneeNotFound   = "assigneeNotRegistered"
	MsgFailListTask       = "errorListTask"
	MsgFailGetTask        = "failGetTask"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailCompleteTask   = "failCompleteTask"
	MsgFailDeleteTask     = "failDeleteTask"

	MsgInvalidUpdatePayload = "invalidUpdatePayload"
	MsgFailListUpdates      = "failListUpdates"
	MsgFailCreateUpdate     = "failCreateUpdate"

	MsgUserNotFound         = "userNotFound"
	MsgUserAlreadyExists    = "userAlreadyExists"
	MsgUserDetailNotFound   = "userDetailNotFound"
	MsgInvalidDetailPayload = "invalidDetailPayload"
	MsgFailListUsers        = "failListUsers"
	MsgFailGetUser          = "failGetUser"
	MsgFailSaveUserDetail   = "failSaveUserDetail"
	MsgInvalidAuthPayload   = "invalidAuthPayload"
	MsgInvalidIdentityToken = "invalidIdentityToken"
	MsgUnauthorized         = "unauthorized"
	MsgFailAuthenticate     = "failAuthenticate"

	MsgInvalidChatQuery  = "invalidChatQuery"
	MsgEmptyMessage      = "emptyMessage"
	MsgFailListChat      = "failListChat"
	MsgFailPostChat      = "failPostChat"
	MsgFailSendSummaries = "failSendSummaries"
)
