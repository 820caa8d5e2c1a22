package service

import (
	"errors"
	"gyanbrix_backend/internal/util"
	"testing"
)

func newContentService(env *testEnv) *ContentService {
	return NewContentService(env.classRepo, env.subjectRepo, env.chapterRepo, nil)
}

func TestDeleteClassRejectedWhileSubjectsExist(t *testing.T) {
	env := newTestEnv(t)
	svc := newContentService(env)

	class := env.seedClass(t, "Class 6")
	env.seedSubject(t, class.ID, "English")

	if err := svc.DeleteClass(class.ID); !errors.Is(err, util.ErrClassNotEmpty) {
		t.Errorf("err = %v, want ErrClassNotEmpty", err)
	}

	// still listed
	classes, _ := svc.ListClasses()
	if len(classes) != 1 {
		t.Errorf("classes = %d, want 1", len(classes))
	}
}

func TestDeleteChainBottomUp(t *testing.T) {
	env := newTestEnv(t)
	svc := newContentService(env)

	class := env.seedClass(t, "Class 6")
	subject := env.seedSubject(t, class.ID, "English")
	chapter := env.seedChapter(t, class.ID, subject.ID, "Grammar")
	question := env.seedQuestion(t, class.ID, subject.ID, chapter.ID, 0)

	if err := svc.DeleteSubject(subject.ID); !errors.Is(err, util.ErrSubjectNotEmpty) {
		t.Fatalf("delete subject with chapters: err = %v, want ErrSubjectNotEmpty", err)
	}
	if err := svc.DeleteChapter(chapter.ID); !errors.Is(err, util.ErrChapterNotEmpty) {
		t.Fatalf("delete chapter with questions: err = %v, want ErrChapterNotEmpty", err)
	}

	// removing leaves unlocks each parent in turn
	if err := env.questionSvc.Delete(question.ID); err != nil {
		t.Fatalf("delete question: %v", err)
	}
	if err := svc.DeleteChapter(chapter.ID); err != nil {
		t.Fatalf("delete empty chapter: %v", err)
	}
	if err := svc.DeleteSubject(subject.ID); err != nil {
		t.Fatalf("delete empty subject: %v", err)
	}
	if err := svc.DeleteClass(class.ID); err != nil {
		t.Fatalf("delete empty class: %v", err)
	}
}

func TestCreateSubjectUnderUnknownClass(t *testing.T) {
	env := newTestEnv(t)
	svc := newContentService(env)

	if _, err := svc.CreateSubject("missing", &SubjectRequest{Name: "x"}, ""); err == nil {
		t.Error("expected error creating subject under unknown class")
	}
}

func TestCreateChapterScopeMismatch(t *testing.T) {
	env := newTestEnv(t)
	svc := newContentService(env)

	class := env.seedClass(t, "Class 6")
	other := env.seedClass(t, "Class 7")
	subject := env.seedSubject(t, class.ID, "English")

	_, err := svc.CreateChapter(other.ID, subject.ID, &ChapterRequest{Title: "x"}, "")
	if !errors.Is(err, util.ErrScopeMismatch) {
		t.Errorf("err = %v, want ErrScopeMismatch", err)
	}
}
