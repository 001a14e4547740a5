package consult

import "fmt"

// Templates are fixed markdown documents with the literal question in the title
// line. They hold no state, so identical questions yield identical text.

// Template returns the generator for a topic; unknown topics get the general one.
func Template(t Topic) func(query string) string {
	switch t {
	case TopicReview:
		return reviewTemplate
	case TopicOptimization:
		return optimizationTemplate
	case TopicArchitecture:
		return architectureTemplate
	case TopicDebugging:
		return debuggingTemplate
	case TopicSecurity:
		return securityTemplate
	default:
		return generalTemplate
	}
}

func reviewTemplate(query string) string {
	return fmt.Sprintf(reviewTemplateText, query)
}

const reviewTemplateText = `
# Strategic Code Quality Assessment

## Consultation Summary for: "%s"

### Key Quality Indicators to Evaluate:
- **Code Organization**: Assess module structure, separation of concerns, and logical grouping
- **Maintainability**: Evaluate readability, documentation quality, and future modification ease
- **Reliability**: Review error handling patterns, edge case coverage, and failure modes
- **Performance Considerations**: Identify algorithmic efficiency and resource utilization patterns

### Recommended Assessment Framework:
1. **Structural Analysis**
   - Review architectural patterns and design principles compliance
   - Assess dependency management and coupling levels
   - Evaluate abstraction layers and interface design

2. **Quality Metrics Evaluation**
   - Cyclomatic complexity assessment for maintainability
   - Test coverage analysis for reliability confidence
   - Technical debt identification and prioritization

3. **Strategic Recommendations**
   - Prioritize improvements based on business impact and technical risk
   - Establish code quality gates for future development
   - Implement automated quality assurance processes

### Next Steps:
Focus your review on areas with highest business risk and technical complexity. Consider implementing peer review processes and automated quality checks to maintain standards consistently.

**Consultation Recommendation**: Establish measurable quality metrics before implementing improvements to track progress effectively.
`

func optimizationTemplate(query string) string {
	return fmt.Sprintf(optimizationTemplateText, query)
}

const optimizationTemplateText = `
# Performance Optimization Strategy

## Strategic Analysis for: "%s"

### Performance Assessment Framework:
- **Bottleneck Identification**: Systematic profiling to locate actual vs. perceived performance issues
- **Scalability Analysis**: Current capacity limits and growth trajectory planning
- **Resource Utilization**: CPU, memory, I/O, and network efficiency evaluation
- **User Experience Impact**: Performance effects on business metrics and user satisfaction

### Optimization Strategy Recommendations:
1. **Measurement First Approach**
   - Establish baseline performance metrics before optimization
   - Implement comprehensive monitoring and alerting systems
   - Define performance SLAs aligned with business requirements

2. **Systematic Optimization Priorities**
   - **High Impact, Low Effort**: Quick wins for immediate improvement
   - **Algorithmic Optimization**: Core logic efficiency improvements
   - **Infrastructure Scaling**: Horizontal vs. vertical scaling decisions
   - **Caching Strategies**: Multi-level caching implementation planning

3. **Long-term Performance Strategy**
   - Performance budgets and continuous monitoring
   - Capacity planning for anticipated growth
   - Performance regression prevention processes

### Risk Considerations:
- Premature optimization can introduce complexity without meaningful benefits
- Balance optimization efforts with development velocity and maintainability
- Consider cost implications of performance improvements vs. business value

**Strategic Recommendation**: Focus optimization efforts on measured bottlenecks that directly impact user experience or operational costs.
`

func architectureTemplate(query string) string {
	return fmt.Sprintf(architectureTemplateText, query)
}

const architectureTemplateText = `
# Software Architecture Strategy Consultation

## Strategic Analysis for: "%s"

### Architecture Assessment Framework:
- **Current State Analysis**: Existing system capabilities, limitations, and technical debt
- **Future Requirements**: Scalability needs, feature roadmap, and business growth plans
- **Technology Landscape**: Platform capabilities, ecosystem integration, and vendor considerations
- **Risk Assessment**: Technical risks, operational complexity, and migration challenges

### Architectural Strategy Recommendations:
1. **Design Principles Alignment**
   - **Modularity**: Component independence and interface design clarity
   - **Scalability**: Horizontal scaling capabilities and resource optimization
   - **Reliability**: Fault tolerance, recovery mechanisms, and operational resilience
   - **Maintainability**: Code organization, documentation, and team knowledge transfer

2. **Technology Selection Criteria**
   - Team expertise and learning curve considerations
   - Community support and long-term technology viability
   - Integration capabilities with existing systems
   - Performance characteristics matching business requirements

3. **Implementation Strategy**
   - Phased migration approach minimizing business disruption
   - Risk mitigation through proof-of-concept validation
   - Team training and knowledge transfer planning
   - Success metrics and milestone definition

### Strategic Considerations:
- Architecture decisions have long-term implications for team productivity and system maintainability
- Balance technical excellence with business delivery timelines
- Consider operational overhead of architectural complexity

**Strategic Recommendation**: Prioritize architectural decisions that provide clear business value while maintaining technical sustainability for your team's capabilities.
`

func debuggingTemplate(query string) string {
	return fmt.Sprintf(debuggingTemplateText, query)
}

const debuggingTemplateText = `
# Systematic Debugging Strategy Consultation

## Problem Analysis for: "%s"

### Strategic Debugging Framework:
- **Problem Classification**: Systematic vs. intermittent issues, environmental vs. code-related
- **Impact Assessment**: Business impact, user experience effects, and operational risks
- **Root Cause Analysis**: Systematic investigation approach to identify underlying causes
- **Resolution Strategy**: Short-term fixes vs. long-term architectural improvements

### Recommended Investigation Approach:
1. **Systematic Problem Isolation**
   - Reproduce issues in controlled environments
   - Eliminate variables through methodical testing
   - Document findings and investigation steps for team knowledge

2. **Diagnostic Strategy**
   - Implement comprehensive logging and monitoring
   - Use profiling tools appropriate for your technology stack
   - Leverage observability platforms for distributed system issues

3. **Resolution Planning**
   - **Immediate Fixes**: Minimal changes to restore functionality
   - **Comprehensive Solutions**: Address root causes and prevent recurrence
   - **Process Improvements**: Enhance development practices to prevent similar issues

### Long-term Improvement Strategy:
- Implement automated testing to catch issues earlier in development
- Establish error monitoring and alerting for proactive issue detection
- Create debugging runbooks for common problem patterns
- Foster team debugging skills through knowledge sharing

### Risk Management:
- Balance quick fixes with sustainable long-term solutions
- Consider testing and deployment risks when implementing fixes
- Plan rollback strategies for production deployments

**Strategic Recommendation**: Focus on understanding the problem thoroughly before implementing solutions. Quick fixes should be followed by comprehensive analysis to prevent recurrence.
`

func securityTemplate(query string) string {
	return fmt.Sprintf(securityTemplateText, query)
}

const securityTemplateText = `
# Security Strategy Consultation

## Security Assessment for: "%s"

### Security Framework Analysis:
- **Threat Landscape**: Current security risks specific to your application and industry
- **Attack Surface**: Entry points, data flows, and vulnerability exposure areas
- **Compliance Requirements**: Industry standards, regulatory requirements, and organizational policies
- **Risk Tolerance**: Business risk acceptance levels and security investment priorities

### Strategic Security Recommendations:
1. **Security by Design Principles**
   - **Defense in Depth**: Multi-layered security controls and redundancy
   - **Least Privilege**: Minimal access rights and permission management
   - **Fail Secure**: System behavior during security failures and edge cases
   - **Security Transparency**: Audit trails and security event monitoring

2. **Implementation Priority Framework**
   - **Critical Vulnerabilities**: Immediate threats requiring urgent attention
   - **High-Impact Improvements**: Significant risk reduction with reasonable effort
   - **Compliance Requirements**: Mandatory security controls and audit requirements
   - **Proactive Measures**: Future-focused security enhancements

3. **Operational Security Strategy**
   - Regular security assessments and penetration testing
   - Security awareness training for development teams
   - Incident response planning and team preparation
   - Security metrics and continuous improvement processes

### Technology Security Considerations:
- Secure coding practices and vulnerability prevention
- Third-party dependency security management
- Infrastructure security and deployment pipeline protection
- Data protection and privacy compliance strategies

**Strategic Recommendation**: Implement security controls based on actual risk assessment rather than generic security checklists. Focus on protecting your most valuable assets and critical business functions.
`

func generalTemplate(query string) string {
	return fmt.Sprintf(generalTemplateText, query)
}

const generalTemplateText = `
# Software Engineering Strategic Consultation

## Strategic Analysis for: "%s"

### Engineering Excellence Framework:
- **Technical Strategy**: Alignment between technology choices and business objectives
- **Team Productivity**: Development processes, tooling, and collaboration effectiveness
- **Quality Assurance**: Testing strategies, code quality, and reliability measures
- **Operational Excellence**: Deployment, monitoring, and incident management capabilities

### Recommended Strategic Approach:
1. **Current State Assessment**
   - Evaluate existing technical capabilities and limitations
   - Identify team strengths and skill development opportunities
   - Assess process effectiveness and improvement areas
   - Review technology stack alignment with business goals

2. **Strategic Planning**
   - **Short-term Improvements**: Quick wins for immediate productivity gains
   - **Medium-term Investments**: Capability building and process optimization
   - **Long-term Vision**: Technology roadmap and architectural evolution
   - **Risk Mitigation**: Technical debt management and knowledge transfer

3. **Implementation Excellence**
   - Prioritize improvements based on business impact and technical feasibility
   - Establish success metrics and progress tracking mechanisms
   - Plan team training and knowledge transfer strategies
   - Create sustainable development practices and quality standards

### Key Strategic Considerations:
- Balance technical excellence with business delivery requirements
- Consider team capacity and skill development when planning improvements
- Align technical decisions with business strategy and growth plans
- Invest in sustainable practices that support long-term success

### Success Metrics:
- Team productivity and development velocity
- Code quality and defect reduction rates
- System reliability and performance metrics
- Business feature delivery and time-to-market

**Strategic Recommendation**: Focus on building sustainable engineering practices that support both current business needs and future growth. Prioritize improvements that enhance team capability and system reliability.
`
