package form

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mikey/spamshield/internal/core"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) AnalyzeEmail(ctx context.Context, email *core.Email) (*core.SpamAnalysisResult, error) {
	args := m.Called(ctx, email)
	result, _ := args.Get(0).(*core.SpamAnalysisResult)
	return result, args.Error(1)
}

type FormSuite struct {
	suite.Suite
	analyzer *mockAnalyzer
	form     *Form
}

func TestForm(t *testing.T) {
	suite.Run(t, new(FormSuite))
}

func (s *FormSuite) SetupTest() {
	s.analyzer = &mockAnalyzer{}
	s.form = New(s.analyzer, 0)
}

func (s *FormSuite) TearDownTest() {
	s.analyzer.AssertExpectations(s.T())
}

func (s *FormSuite) fill(sender, subject, body string) {
	s.form.Sender = sender
	s.form.Subject = subject
	s.form.Body = body
}

func (s *FormSuite) TestSubmitRejectsBlankBody() {
	for _, body := range []string{"", "   ", "\n\t \r\n", "\uFEFF", " \uFEFF\n\u00a0"} {
		s.fill("a@b.com", "hello", body)

		result, err := s.form.Submit(context.Background())

		s.ErrorIs(err, ErrEmptyBody)
		s.Nil(result)
		s.False(s.form.HasResult())
		s.False(s.form.CanSubmit())
		s.Equal("a@b.com", s.form.Sender)
	}
	s.analyzer.AssertNotCalled(s.T(), "AnalyzeEmail", mock.Anything, mock.Anything)
}

func (s *FormSuite) TestSubmitStoresResult() {
	s.fill("a@b.com", "Hello", "Just checking in.")
	want := &core.SpamAnalysisResult{
		Verdict: core.Verdict{Score: 0, Reasons: []string{"No suspicious patterns detected"}},
		Source:  core.SourceHeuristic,
	}
	s.analyzer.On("AnalyzeEmail", mock.Anything, &core.Email{
		From:    "a@b.com",
		Subject: "Hello",
		Body:    "Just checking in.",
	}).Return(want, nil).Once()

	s.True(s.form.CanSubmit())
	result, err := s.form.Submit(context.Background())

	s.Require().NoError(err)
	s.Same(want, result)
	s.True(s.form.HasResult())
	s.Same(want, s.form.Result())
	s.False(s.form.Analyzing())
}

func (s *FormSuite) TestAnalyzingDuringSubmit() {
	s.fill("", "", "body text")
	s.analyzer.On("AnalyzeEmail", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			s.True(s.form.Analyzing())
			s.False(s.form.CanSubmit())
		}).
		Return(&core.SpamAnalysisResult{}, nil).Once()

	_, err := s.form.Submit(context.Background())
	s.NoError(err)
	s.False(s.form.Analyzing())
}

func (s *FormSuite) TestSubmitPropagatesAnalyzerError() {
	s.fill("", "", "body text")
	boom := errors.New("boom")
	s.analyzer.On("AnalyzeEmail", mock.Anything, mock.Anything).Return(nil, boom).Once()

	_, err := s.form.Submit(context.Background())

	s.ErrorIs(err, boom)
	s.False(s.form.HasResult())
	s.False(s.form.Analyzing())
}

func (s *FormSuite) TestSubmitWaitsForDelay() {
	s.form = New(s.analyzer, 20*time.Millisecond)
	s.fill("", "", "body text")
	s.analyzer.On("AnalyzeEmail", mock.Anything, mock.Anything).Return(&core.SpamAnalysisResult{}, nil).Once()

	start := time.Now()
	_, err := s.form.Submit(context.Background())

	s.NoError(err)
	s.GreaterOrEqual(time.Since(start), 20*time.Millisecond)
}

func (s *FormSuite) TestSubmitCancelledDuringDelay() {
	s.form = New(s.analyzer, time.Hour)
	s.fill("", "", "body text")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	result, err := s.form.Submit(ctx)

	s.ErrorIs(err, context.DeadlineExceeded)
	s.Nil(result)
	s.False(s.form.HasResult())
	s.False(s.form.Analyzing())
	s.analyzer.AssertNotCalled(s.T(), "AnalyzeEmail", mock.Anything, mock.Anything)
}

func (s *FormSuite) TestReset() {
	s.fill("a@b.com", "Hello", "Just checking in.")
	s.analyzer.On("AnalyzeEmail", mock.Anything, mock.Anything).Return(&core.SpamAnalysisResult{}, nil).Once()
	_, err := s.form.Submit(context.Background())
	s.Require().NoError(err)

	s.form.Reset()

	s.Empty(s.form.Sender)
	s.Empty(s.form.Subject)
	s.Empty(s.form.Body)
	s.False(s.form.HasResult())
	s.Nil(s.form.Result())
}
