package service

import (
	"context"
	"errors"
	"gyanbrix_backend/internal/model"
	"gyanbrix_backend/internal/util"
	"testing"
)

// seedHierarchy builds two subjects, each with two chapters of three
// questions, under one class.
func seedHierarchy(t *testing.T, env *testEnv) *model.Class {
	t.Helper()
	class := env.seedClass(t, "Class 8")
	for _, subjectName := range []string{"Maths", "Science"} {
		subject := env.seedSubject(t, class.ID, subjectName)
		for _, chapterTitle := range []string{"One", "Two"} {
			chapter := env.seedChapter(t, class.ID, subject.ID, chapterTitle)
			for i := 0; i < 3; i++ {
				env.seedQuestion(t, class.ID, subject.ID, chapter.ID, 0)
			}
		}
	}
	return class
}

func TestAggregateCandidatesClassScope(t *testing.T) {
	env := newTestEnv(t)
	class := seedHierarchy(t, env)

	pool, err := env.quizSvc.AggregateCandidates(context.Background(), model.QuizClass, class.ID, "", "")
	if err != nil {
		t.Fatalf("AggregateCandidates: %v", err)
	}

	if len(pool) != 12 {
		t.Fatalf("pool size = %d, want 12", len(pool))
	}

	bySubject := map[string]int{}
	byChapter := map[string]int{}
	for _, c := range pool {
		if c.SubjectName == "" || c.ChapterName == "" {
			t.Errorf("candidate %s missing provenance: %q / %q", c.Question.ID, c.SubjectName, c.ChapterName)
		}
		bySubject[c.SubjectName]++
		byChapter[c.SubjectName+"/"+c.ChapterName]++
	}
	if bySubject["Maths"] != 6 || bySubject["Science"] != 6 {
		t.Errorf("subject split = %v, want 6/6", bySubject)
	}
	if len(byChapter) != 4 {
		t.Errorf("chapter groups = %d, want 4", len(byChapter))
	}
}

func TestAggregateCandidatesSubjectScope(t *testing.T) {
	env := newTestEnv(t)
	class := seedHierarchy(t, env)

	subjects, err := env.subjectRepo.ListByClass(class.ID)
	if err != nil {
		t.Fatal(err)
	}

	pool, err := env.quizSvc.AggregateCandidates(context.Background(), model.QuizSubject, class.ID, subjects[0].ID, "")
	if err != nil {
		t.Fatalf("AggregateCandidates: %v", err)
	}
	if len(pool) != 6 {
		t.Errorf("pool size = %d, want 6", len(pool))
	}
	for _, c := range pool {
		if c.SubjectName != subjects[0].Name {
			t.Errorf("candidate from subject %q, want %q", c.SubjectName, subjects[0].Name)
		}
	}
}

func TestAggregateCandidatesChapterScope(t *testing.T) {
	env := newTestEnv(t)
	class := seedHierarchy(t, env)

	subjects, _ := env.subjectRepo.ListByClass(class.ID)
	chapters, _ := env.chapterRepo.ListBySubject(subjects[0].ID)

	pool, err := env.quizSvc.AggregateCandidates(context.Background(), model.QuizChapter, class.ID, subjects[0].ID, chapters[0].ID)
	if err != nil {
		t.Fatalf("AggregateCandidates: %v", err)
	}
	if len(pool) != 3 {
		t.Errorf("pool size = %d, want 3", len(pool))
	}
}

func TestAggregateCandidatesScopeMismatch(t *testing.T) {
	env := newTestEnv(t)
	class := seedHierarchy(t, env)
	other := env.seedClass(t, "Class 9")
	otherSubject := env.seedSubject(t, other.ID, "History")

	_, err := env.quizSvc.AggregateCandidates(context.Background(), model.QuizSubject, class.ID, otherSubject.ID, "")
	if !errors.Is(err, util.ErrScopeMismatch) {
		t.Errorf("err = %v, want ErrScopeMismatch", err)
	}
}

func TestQuizCreateRejectsOutOfScopeQuestion(t *testing.T) {
	env := newTestEnv(t)
	class := env.seedClass(t, "Class 8")
	subject := env.seedSubject(t, class.ID, "Maths")
	chapter := env.seedChapter(t, class.ID, subject.ID, "One")
	otherChapter := env.seedChapter(t, class.ID, subject.ID, "Two")

	inScope := env.seedQuestion(t, class.ID, subject.ID, chapter.ID, 0)
	outOfScope := env.seedQuestion(t, class.ID, subject.ID, otherChapter.ID, 0)

	req := &QuizRequest{
		Type:            model.QuizChapter,
		ClassID:         class.ID,
		SubjectID:       subject.ID,
		ChapterID:       chapter.ID,
		Title:           "t",
		DurationMinutes: 10,
		QuestionIDs:     []string{inScope.ID, outOfScope.ID},
	}
	if _, err := env.quizSvc.Create(req, ""); !errors.Is(err, util.ErrScopeMismatch) {
		t.Errorf("err = %v, want ErrScopeMismatch", err)
	}
}

func TestQuizCreateCollapsesDuplicateQuestionIDs(t *testing.T) {
	env := newTestEnv(t)
	class := env.seedClass(t, "Class 8")
	subject := env.seedSubject(t, class.ID, "Maths")
	chapter := env.seedChapter(t, class.ID, subject.ID, "One")
	q1 := env.seedQuestion(t, class.ID, subject.ID, chapter.ID, 0)
	q2 := env.seedQuestion(t, class.ID, subject.ID, chapter.ID, 1)

	req := &QuizRequest{
		Type:            model.QuizChapter,
		ClassID:         class.ID,
		SubjectID:       subject.ID,
		ChapterID:       chapter.ID,
		Title:           "t",
		DurationMinutes: 10,
		QuestionIDs:     []string{q1.ID, q2.ID, q1.ID, q1.ID},
	}
	quiz, err := env.quizSvc.Create(req, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if quiz.TotalQuestions != 2 {
		t.Errorf("TotalQuestions = %d, want 2", quiz.TotalQuestions)
	}

	refs := quiz.QuestionRefs()
	if len(refs) != 2 || refs[0].QuestionID != q1.ID || refs[1].QuestionID != q2.ID {
		t.Errorf("refs = %+v, want first occurrences of q1 then q2", refs)
	}
}

func TestQuizCreateRecordsUsage(t *testing.T) {
	env := newTestEnv(t)
	class := env.seedClass(t, "Class 8")
	subject := env.seedSubject(t, class.ID, "Maths")
	chapter := env.seedChapter(t, class.ID, subject.ID, "One")
	q := env.seedQuestion(t, class.ID, subject.ID, chapter.ID, 0)

	quiz := env.seedQuiz(t, class.ID, subject.ID, chapter.ID, []string{q.ID}, 10)

	stored, err := env.questRepo.FindByID(q.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored.Usage) == 0 {
		t.Fatal("usage not recorded on question")
	}

	if err := env.quizSvc.Delete(quiz.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	stored, _ = env.questRepo.FindByID(q.ID)
	if string(stored.Usage) != "[]" && len(stored.Usage) > 2 {
		t.Errorf("usage not cleared after quiz delete: %s", stored.Usage)
	}
}

func TestResolveQuestionsSkipsDangling(t *testing.T) {
	env := newTestEnv(t)
	class := env.seedClass(t, "Class 8")
	subject := env.seedSubject(t, class.ID, "Maths")
	chapter := env.seedChapter(t, class.ID, subject.ID, "One")

	q1 := env.seedQuestion(t, class.ID, subject.ID, chapter.ID, 0)
	q2 := env.seedQuestion(t, class.ID, subject.ID, chapter.ID, 0)
	quiz := env.seedQuiz(t, class.ID, subject.ID, chapter.ID, []string{q1.ID, q2.ID}, 10)

	// hard-delete one question so its ref dangles
	env.db.Unscoped().Delete(&model.Question{}, "id = ?", q1.ID)

	stored, err := env.quizRepo.FindByID(quiz.ID)
	if err != nil {
		t.Fatal(err)
	}
	resolved, err := env.quizSvc.ResolveQuestions(stored)
	if err != nil {
		t.Fatalf("ResolveQuestions: %v", err)
	}
	if len(resolved) != 1 || resolved[0].ID != q2.ID {
		t.Errorf("resolved = %v, want only %s", resolved, q2.ID)
	}

	// all refs dangling -> no session can start
	env.db.Unscoped().Delete(&model.Question{}, "id = ?", q2.ID)
	stored, _ = env.quizRepo.FindByID(quiz.ID)
	if _, err := env.quizSvc.ResolveQuestions(stored); !errors.Is(err, util.ErrQuizNoQuestions) {
		t.Errorf("err = %v, want ErrQuizNoQuestions", err)
	}
}

func TestQuizListScopes(t *testing.T) {
	env := newTestEnv(t)
	class := env.seedClass(t, "Class 8")
	subject := env.seedSubject(t, class.ID, "Maths")
	chapter := env.seedChapter(t, class.ID, subject.ID, "One")
	q := env.seedQuestion(t, class.ID, subject.ID, chapter.ID, 0)

	env.seedQuiz(t, class.ID, subject.ID, chapter.ID, []string{q.ID}, 10)

	classQuiz, err := env.quizSvc.Create(&QuizRequest{
		Type:            model.QuizClass,
		ClassID:         class.ID,
		Title:           "class quiz",
		DurationMinutes: 10,
		QuestionIDs:     []string{q.ID},
	}, "")
	if err != nil {
		t.Fatalf("create class quiz: %v", err)
	}

	chapterQuizzes, err := env.quizSvc.ListByChapter(class.ID, subject.ID, chapter.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(chapterQuizzes) != 1 {
		t.Errorf("chapter quizzes = %d, want 1", len(chapterQuizzes))
	}

	classQuizzes, err := env.quizSvc.ListByClass(class.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(classQuizzes) != 1 || classQuizzes[0].ID != classQuiz.ID {
		t.Errorf("class quizzes = %v, want only %s", classQuizzes, classQuiz.ID)
	}
}
