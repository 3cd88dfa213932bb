package service

import "errors"

var (
	// ErrEmptyContent is returned before any request when a comment body is blank.
	ErrEmptyContent = errors.New("comment content is empty")
	// ErrMissingCode is returned when the oauth callback carries no code.
	ErrMissingCode = errors.New("missing authorization code")
	// ErrMissingToken is returned when the oauth callback succeeds without issuing a token.
	ErrMissingToken = errors.New("auth callback returned no access token")
)

// User facing messages naming the failed operation.
const (
	MsgListComments   = "댓글 조회 실패"
	MsgCreateComment  = "댓글 작성 실패"
	MsgCreateReply    = "대댓글 작성 실패"
	MsgUpdateComment  = "댓글 수정 실패"
	MsgDeleteComment  = "댓글 삭제 실패"
	MsgLoadSummaries  = "요약본 불러오기 실패"
	MsgLoadSummary    = "요약본 불러오기 실패"
	MsgLoadUser       = "사용자 정보 불러오기 실패"
	MsgLoadInterests  = "관심사 불러오기 실패"
	MsgLoadTags       = "태그 불러오기 실패"
	MsgAuthentication = "인증에 실패했습니다. 다시 시도해주세요."
)
