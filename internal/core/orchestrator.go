// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package core runs the field extractors over one judgment and assembles the
// record. It is shared by the CLI and the batch processor.
package core

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"judgment-extract/internal/detector"
	"judgment-extract/internal/doctype"
	"judgment-extract/internal/extractors/casenumber"
	"judgment-extract/internal/extractors/courtname"
	"judgment-extract/internal/extractors/party"
	"judgment-extract/internal/extractors/trialdate"
	"judgment-extract/internal/language"
	"judgment-extract/internal/lexicon"
	"judgment-extract/internal/logging"
	"judgment-extract/internal/observability"
	"judgment-extract/internal/record"
	"judgment-extract/internal/rules"
	"judgment-extract/internal/textnorm"

	"go.uber.org/zap"
)

// DefaultHeadRunes is the leading region, roughly the first four pages,
// that basic fields are read from.
const DefaultHeadRunes = 15000

// headFields are read from the leading region only. Every other field sees
// the whole text.
var headFields = map[string]bool{
	record.FieldCaseNumber: true,
	record.FieldTrialDate:  true,
	record.FieldCourtName:  true,
	record.FieldPlaintiff:  true,
	record.FieldDefendant:  true,
	record.FieldCaseType:   true,
}

// corrigendumFields are extracted from corrigendum documents.
var corrigendumFields = []string{
	record.FieldCaseNumber, record.FieldTrialDate, record.FieldCourtName,
	record.FieldPlaintiff, record.FieldDefendant,
}

// Options configures an Orchestrator.
type Options struct {
	// Fields limits extraction to the named fields. Empty means all.
	Fields []string
	// HeadRunes bounds the region basic fields are read from.
	HeadRunes int
	// LawyerTail is the share of the document searched for representation.
	LawyerTail float64
	// ChineseRatio is the CJK share above which a document is Chinese.
	ChineseRatio float64
	// Observer, when set, records per-extractor timings.
	Observer *observability.StandardObserver
}

// Orchestrator turns raw documents into records. It holds no per-document
// state and is safe for concurrent use.
type Orchestrator struct {
	logger     *zap.Logger
	observer   *observability.StandardObserver
	normalizer *textnorm.Normalizer
	language   *language.Detector
	lex        *lexicon.Lexicon
	extractors map[string]detector.Extractor
	headRunes  int

	// corrigendum runs over the full text regardless of the field selection
	corrigendum map[string]detector.Extractor
}

type observable interface {
	SetObserver(*observability.StandardObserver)
}

// New builds an orchestrator for opts.
func New(opts Options, logger *zap.Logger) *Orchestrator {
	logger = logging.OrNop(logger)
	o := &Orchestrator{
		logger:     logger.With(zap.String("component", "orchestrator")),
		observer:   opts.Observer,
		normalizer: textnorm.NewNormalizer(logger),
		language:   language.NewDetector(opts.ChineseRatio),
		lex:        lexicon.Default(),
		extractors: BuildExtractorSet(ParseFieldsToRun(opts.Fields), opts, logger),
		headRunes:  opts.HeadRunes,
		corrigendum: map[string]detector.Extractor{
			record.FieldCaseNumber: casenumber.NewExtractor(logger),
			record.FieldTrialDate:  trialdate.NewExtractor(logger),
			record.FieldCourtName:  courtname.NewExtractor(logger),
			record.FieldPlaintiff:  party.NewExtractor(party.Plaintiff, logger),
			record.FieldDefendant:  party.NewExtractor(party.Defendant, logger),
		},
	}
	if o.headRunes <= 0 {
		o.headRunes = DefaultHeadRunes
	}
	if opts.Observer != nil {
		for _, ex := range o.extractors {
			if ob, ok := ex.(observable); ok {
				ob.SetObserver(opts.Observer)
			}
		}
	}
	return o
}

// Enabled lists the fields this orchestrator extracts, in output order.
func (o *Orchestrator) Enabled() []string {
	var out []string
	for _, f := range record.ExtractedFields {
		if _, ok := o.extractors[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Extract runs every enabled extractor over doc and returns the frozen
// record. It never fails: fields that cannot be found are left empty.
func (o *Orchestrator) Extract(doc record.RawDocument) *record.Record {
	fileName := doc.FileName
	if fileName != "" {
		fileName = filepath.Base(fileName)
	}
	filePath := doc.FilePath
	if filePath == "" {
		filePath = doc.FileName
	}

	done := o.observer.StartTiming("orchestrator", "extract", filePath)

	rec := record.New()
	rec.Set(record.FieldFileName, fileName)
	rec.Set(record.FieldFilePath, filePath)

	text := o.normalizer.Normalize(textnorm.Canonicalize(doc.Text))
	rec.SetTextLength(utf8.RuneCountInString(text))

	if strings.TrimSpace(text) == "" {
		o.logger.Warn("empty text provided for extraction", zap.String("file", fileName))
		rec.Set(record.FieldLanguage, string(language.English))
		rec.Set(record.FieldDocumentType, doctype.Classify(fileName))
		rec.Freeze()
		done(false, map[string]interface{}{"empty": true})
		return rec
	}

	lang := o.language.Detect(text)
	docType := doctype.Classify(fileName)
	rec.Set(record.FieldLanguage, string(lang))

	if IsCorrigendum(text, o.lex) {
		o.logger.Info("corrigendum document detected", zap.String("file", fileName))
		o.extractCorrigendum(rec, text, lang, fileName)
	} else {
		rec.Set(record.FieldDocumentType, docType)
		full := detector.Input{Text: text, Language: lang, DocType: docType, FileName: fileName}
		head := full
		head.Text = rules.Head(o.headRunes)(text)

		for _, field := range record.ExtractedFields {
			ex, ok := o.extractors[field]
			if !ok {
				continue
			}
			in := full
			if headFields[field] {
				in = head
			}
			rec.Set(field, o.run(ex, in))
		}
	}

	rec.Freeze()
	done(true, map[string]interface{}{"language": string(lang), "document_type": rec.Get(record.FieldDocumentType)})
	return rec
}

func (o *Orchestrator) extractCorrigendum(rec *record.Record, text string, lang language.Language, fileName string) {
	rec.Set(record.FieldDocumentType, doctype.Corrigendum)
	in := detector.Input{Text: text, Language: lang, DocType: doctype.Corrigendum, FileName: fileName}
	for _, field := range corrigendumFields {
		rec.Set(field, o.run(o.corrigendum[field], in))
	}

	rec.Set(record.FieldCaseType, CorrigendumCaseType)
	rec.Set(record.FieldJudgmentResult, CorrigendumResult)
	rec.Set(record.FieldClaimAmount, record.NotFound)
	rec.Set(record.FieldJudgmentAmount, record.NotFound)

	d := ExtractCorrigendumDetails(text)
	rec.Set(record.FieldCorrectedDocType, d.CorrectedDocType)
	rec.Set(record.FieldOriginalDate, d.OriginalDate)
	rec.Set(record.FieldCorrigendumDate, d.CorrigendumDate)
	rec.Set(record.FieldCorrection, d.Summary)
}

// run invokes one extractor, turning a panic into an empty field.
func (o *Orchestrator) run(ex detector.Extractor, in detector.Input) (value string) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("extractor panicked",
				zap.String("field", ex.Field()),
				zap.String("file", in.FileName),
				zap.Any("panic", r))
			value = record.NotFound
		}
	}()
	return ex.Extract(in)
}
