package errors

// User-facing messages. They are fixed strings so that no internal detail
// reaches the chat channel.
const (
	MsgRequestFailed = "⚠️ 이미지 생성 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
	MsgConfiguration = "⚠️ 봇 설정에 문제가 있습니다. 관리자에게 문의해주세요."
	MsgUnexpected    = "⚠️ 일시적인 오류가 발생했습니다. 잠시 후 다시 시도해주세요."
)

// UserMessage maps any error to a generic message safe to show in chat.
func UserMessage(err error) string {
	switch KindOf(err) {
	case KindRequestFailed:
		return MsgRequestFailed
	case KindConfiguration:
		return MsgConfiguration
	default:
		return MsgUnexpected
	}
}
